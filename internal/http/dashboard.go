package http

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

const dashboardHTML = `<!DOCTYPE html>
<html>
<head>
<title>faultline</title>
<style>
body { font-family: sans-serif; margin: 2rem; background: #111; color: #eee; }
h1 { color: #f66; }
table { border-collapse: collapse; width: 100%; }
th, td { text-align: left; padding: 0.4rem 0.8rem; border-bottom: 1px solid #333; }
code { color: #9cf; }
.method { color: #fc6; }
</style>
</head>
<body>
<h1>faultline</h1>
<p>{{len .Bugs}} deliberate faults ready to trigger. Each route reproduces one
failure through ordinary business logic so an error-monitoring SDK has
something real to capture.</p>
<table>
<tr><th>Fault</th><th>Route</th><th>Kind</th><th>Description</th></tr>
{{range .Bugs}}
<tr>
<td>{{.Name}}</td>
<td><span class="method">{{.Method}}</span> <code>{{.Route}}</code></td>
<td><code>{{.Category}}</code></td>
<td>{{.Description}}</td>
</tr>
{{end}}
</table>
</body>
</html>
`

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

func (h *Handler) dashboard(c *gin.Context) {
	bugs := bugResponses(h.catalog.List())

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(c.Writer, gin.H{"Bugs": bugs}); err != nil {
		h.log.Warnf("render dashboard: %v", err)
	}
}
