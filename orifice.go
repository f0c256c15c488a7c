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

package reliefsize

// OrificeSize is a standard relief valve orifice.
type OrificeSize struct {
	// Designation is the API-526 letter designation of the orifice.
	Designation string

	// AreaMM2 is the effective orifice area [mm²].
	AreaMM2 float64

	// AreaIn2 is the effective orifice area [in²].
	AreaIn2 float64
}

// orificeSizes holds the API-526 standard effective orifice areas in order
// of increasing area.
var orificeSizes = []OrificeSize{
	{Designation: "D", AreaMM2: 71, AreaIn2: 0.110},
	{Designation: "E", AreaMM2: 126, AreaIn2: 0.196},
	{Designation: "F", AreaMM2: 198, AreaIn2: 0.307},
	{Designation: "G", AreaMM2: 325, AreaIn2: 0.503},
	{Designation: "H", AreaMM2: 506, AreaIn2: 0.785},
	{Designation: "J", AreaMM2: 830, AreaIn2: 1.287},
	{Designation: "K", AreaMM2: 1186, AreaIn2: 1.838},
	{Designation: "L", AreaMM2: 1841, AreaIn2: 2.853},
	{Designation: "M", AreaMM2: 2323, AreaIn2: 3.60},
	{Designation: "N", AreaMM2: 2800, AreaIn2: 4.34},
	{Designation: "P", AreaMM2: 4116, AreaIn2: 6.38},
	{Designation: "Q", AreaMM2: 7129, AreaIn2: 11.05},
	{Designation: "R", AreaMM2: 10323, AreaIn2: 16.0},
	{Designation: "T", AreaMM2: 16774, AreaIn2: 26.0},
}

// OrificeSizes returns a copy of the standard orifice catalogue, ordered
// by increasing area.
func OrificeSizes() []OrificeSize {
	o := make([]OrificeSize, len(orificeSizes))
	copy(o, orificeSizes)
	return o
}

// LargestOrifice returns the largest orifice in the catalogue.
func LargestOrifice() OrificeSize {
	return orificeSizes[len(orificeSizes)-1]
}

// SelectOrifice returns the smallest standard orifice whose area is at
// least requiredAreaMM2 [mm²]. If the required area is larger than the
// largest standard orifice, the largest orifice is returned and it is
// up to the caller to report that it is undersized.
func SelectOrifice(requiredAreaMM2 float64) OrificeSize {
	for _, o := range orificeSizes {
		if o.AreaMM2 >= requiredAreaMM2 {
			return o
		}
	}
	return LargestOrifice()
}

// FindOrifice returns the orifice with the given designation.
func FindOrifice(designation string) (OrificeSize, bool) {
	for _, o := range orificeSizes {
		if o.Designation == designation {
			return o, true
		}
	}
	return OrificeSize{}, false
}
