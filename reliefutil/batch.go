/*
Copyright © 2018 the reliefsize authors.
This file is part of reliefsize.

reliefsize is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

reliefsize is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with reliefsize.  If not, see <http://www.gnu.org/licenses/>.
*/

package reliefutil

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/ctessum/requestcache"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/reliefsize"
	"github.com/spatialmodel/reliefsize/internal/hash"
)

// Result holds the outcome of sizing one scenario.
type Result struct {
	Scenario *Scenario
	Method   reliefsize.Method
	Outputs  *reliefsize.SizingOutputs

	// Values holds the calculated output variables, if any.
	Values map[string]float64

	// Err is non-nil if the scenario could not be sized.
	Err error
}

// Batch sizes many scenarios concurrently. Scenarios that are identical
// after conversion to sizing inputs are only calculated once.
type Batch struct {
	sizer         *reliefsize.Sizer
	defaultMethod reliefsize.Method
	cache         *requestcache.Cache

	// Outputter, if not nil, is used to calculate output variables
	// for each successful result.
	Outputter *Outputter

	Log logrus.FieldLogger
}

type sizeRequest struct {
	in     reliefsize.SizingInputs
	method reliefsize.Method
}

type sizeResult struct {
	out *reliefsize.SizingOutputs
	err error
}

// NewBatch creates a new batch sizer where sizer performs the
// calculations, defaultMethod is used for scenarios that do not specify
// a method, workers is the number of concurrent calculations (if < 1,
// GOMAXPROCS is used) and cacheSize is the number of results to keep
// in memory.
func NewBatch(sizer *reliefsize.Sizer, defaultMethod reliefsize.Method, workers, cacheSize int) *Batch {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(-1)
	}
	if cacheSize < 1 {
		cacheSize = 1
	}
	b := &Batch{
		sizer:         sizer,
		defaultMethod: defaultMethod,
		Log:           logrus.StandardLogger(),
	}
	// Sizing errors are carried in the result; requestcache never
	// releases duplicates of a request that returns an error.
	b.cache = requestcache.NewCache(func(ctx context.Context, request interface{}) (interface{}, error) {
		r := request.(sizeRequest)
		out, err := b.sizer.CalculateSizing(r.in, r.method)
		return sizeResult{out: out, err: err}, nil
	}, workers, requestcache.Deduplicate(), requestcache.Memory(cacheSize))
	return b
}

// Requests returns the number of requests received by the deduplication
// stage, the memory cache and the calculation, in that order.
func (b *Batch) Requests() []int { return b.cache.Requests() }

// Size sizes the given scenarios. The results are in the same order as
// scenarios. A scenario that cannot be sized has a non-nil Err field;
// it does not stop the others.
func (b *Batch) Size(ctx context.Context, scenarios []*Scenario) []*Result {
	results := make([]*Result, len(scenarios))
	var wg sync.WaitGroup
	for i, s := range scenarios {
		results[i] = &Result{Scenario: s}
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		method, err := s.method(b.defaultMethod)
		if err != nil {
			results[i].Err = err
			continue
		}
		results[i].Method = method
		in, err := s.Inputs()
		if err != nil {
			results[i].Err = err
			continue
		}
		req := b.cache.NewRequest(ctx, sizeRequest{in: in, method: method}, hash.Key(in, method))
		wg.Add(1)
		go func(r *Result, in reliefsize.SizingInputs, req *requestcache.Request) {
			defer wg.Done()
			result, err := req.Result()
			if err == nil {
				err = result.(sizeResult).err
			}
			if err != nil {
				r.Err = fmt.Errorf("reliefutil: sizing scenario '%s': %v", r.Scenario.Name, err)
				return
			}
			// Cached outputs are shared between scenarios.
			out := *result.(sizeResult).out
			out.Messages = append([]string{}, out.Messages...)
			r.Outputs = &out
			if b.Outputter != nil {
				r.Values, r.Err = b.Outputter.Evaluate(in, r.Outputs)
			}
		}(results[i], in, req)
	}
	wg.Wait()

	for _, r := range results {
		if r.Err != nil {
			b.log().WithField("scenario", r.Scenario.Name).Warn(r.Err)
		}
	}
	return results
}

func (b *Batch) log() logrus.FieldLogger {
	if b.Log == nil {
		return logrus.StandardLogger()
	}
	return b.Log
}
