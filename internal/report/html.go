package report

import (
	"html/template"
	"io"
	"strings"

	"github.com/tallywatch/tallywatch/internal/snapshot"
)

// HTMLWriter renders one HTML report page: a bordered table per state.
// CrossLink is raw markup pointing at the companion page (the
// battleground page links to the all-states page and vice versa).
type HTMLWriter struct {
	CrossLink template.HTML
}

type htmlPage struct {
	Title       string
	LastUpdated string
	CrossLink   template.HTML
	States      []htmlState
}

type htmlState struct {
	Name           string
	Slug           string
	ElectoralVotes int
	Rows           []Summary
}

var htmlTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://stackpath.bootstrapcdn.com/bootstrap/4.5.2/css/bootstrap.min.css">
</head>
<body>
  <div class="container">
    <h1>{{.Title}}</h1>
    <p>Last updated: {{.LastUpdated}}</p>
    <p>{{.CrossLink}}</p>
{{- range .States}}
    <div class="table-responsive"><table id="{{.Slug}}" class="table table-bordered">
      <thead class="thead-light">
        <tr>
          <th colspan="9" style="text-align:left;"><span>{{.Name}}</span> - Electoral Votes: {{.ElectoralVotes}}</th>
        </tr>
        <tr>
          <th>Timestamp</th>
          <th>Leading Candidate</th>
          <th>Vote Margin</th>
          <th>Votes Remaining (est.)</th>
          <th>Change</th>
          <th>Batch Breakdown</th>
          <th>Batch Trend</th>
          <th>Hurdle</th>
        </tr>
      </thead>
      <tbody>
{{- range .Rows}}
        <tr>
          <td>{{.Timestamp}}</td>
          <td>{{.Leader}}</td>
          <td>{{.Margin}}</td>
          <td>{{.VotesRemaining}}</td>
          <td>{{.Change}}</td>
          <td>{{.BatchBreakdown}}</td>
          <td>{{.Trend}}</td>
          <td>{{.Hurdle}}</td>
        </tr>
{{- end}}
      </tbody>
    </table></div><hr>
{{- end}}
  </div>
</body>
</html>
`))

// Write outputs the HTML page.
func (hw *HTMLWriter) Write(w io.Writer, series snapshot.Series, opts Options) error {
	page := htmlPage{
		Title:       opts.Title,
		LastUpdated: opts.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC"),
		CrossLink:   hw.CrossLink,
	}

	for _, state := range series.States() {
		rows := series.Groups[state]

		st := htmlState{
			Name: state,
			Slug: stateSlug(state),
		}
		if len(rows) > 0 {
			st.ElectoralVotes = rows[0].ElectoralVotes
		}
		for _, row := range rows {
			st.Rows = append(st.Rows, Summarize(row))
		}

		page.States = append(page.States, st)
	}

	return htmlTemplate.Execute(w, page)
}

// stateSlug turns a state name into a table element id, dropping any
// parenthesized qualifier ("Maine (At-Large)" -> "maine").
func stateSlug(name string) string {
	name = strings.TrimSpace(strings.SplitN(name, "(", 2)[0])
	return strings.ToLower(strings.ReplaceAll(name, " ", "-"))
}
