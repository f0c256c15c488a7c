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
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/ctessum/gobra"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
)

// webAddress is the address the configuration web interface listens on.
const webAddress = "localhost:7272"

// configHandler reads the configuration file given in the request and
// returns the resulting configuration values as JSON.
func configHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if c := r.Form.Get("config"); c != "" {
		Root.PersistentFlags().Set("config", c)
	}
	if err := setConfig(); err != nil {
		http.Error(w, err.Error(), http.StatusNoContent)
		return
	}
	config := make(map[string]interface{})
	for _, option := range options {
		config[option.name] = Cfg.Get(option.name)
	}
	e := json.NewEncoder(w)
	if err := e.Encode(config); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

const webTemplate = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>reliefsize</title>
	<style>
		html, body {padding: 0; margin: 2% 0; font-family: sans-serif;}
		.container { max-width: 700px; margin: 0 auto; padding: 10px; }
		div[id^="gobra-"] blockquote { border-left: 3px solid #bbb; margin: .3em; color: #333; padding-left: 5px; font-size: 75%; }
		div[id^="gobra-"] code { font-weight: bold; }
		div[id^="gobra-"] input { font-family: monospace; margin-left: .2em; width: 50%; outline:none; }
	</style>
</head>
<body>
<div class="container">
	<h1>reliefsize</h1>
	<p>Describe the relief scenario below and choose a command.</p>
	<div>
		{{.}}
	</div>
</div>
<script>
let configInput = [...document.querySelectorAll('[data-name="config"]')][0].children[0];
configInput.addEventListener("change", e => {
	fetch("/setConfig?config=" + encodeURIComponent(configInput.value))
		.then(res => res.status === 200 ? res.json() : {})
		.then(data => {
			for (let key in data) {
				let f = document.querySelector('[data-name="' + key + '"]');
				if (f) f.children[0].value = JSON.stringify(data[key]).replace(/^"+|"+$/g, '');
			}
		})
		.catch(err => console.log("Error fetching /setConfig", err));
});
</script>
</body>
</html>`

// StartWebServer starts a web interface for configuring and running
// the commands.
func StartWebServer() {
	setConfig() // Ignore any errors for now.

	http.HandleFunc("/setConfig", configHandler)

	for _, cmd := range []*cobra.Command{Root, versionCmd, sizeCmd, batchCmd, orificesCmd, chartCmd} {
		cmd.SilenceUsage = true // We don't want the usage messages in the GUI.
	}

	output := template.Must(template.New("").Parse(webTemplate))
	server := gobra.Server{Root: Root, ServerAddress: webAddress, AllowCORS: false, HTML: output}
	log.Println("Server starting... ")
	open.Run("http://" + webAddress)
	fmt.Printf("If not opened automatically, please visit http://%s\n", webAddress)
	server.Start()
}
