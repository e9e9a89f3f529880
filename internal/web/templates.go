package web

import (
    "bytes"
    "html/template"
)

type templates struct {
    game  *template.Template
    board *template.Template
    index *template.Template
}

func loadTemplates() *templates {
    base := template.Must(template.New("base").Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Tic-Tac-Toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
</head><body>{{template "content" .}}</body></html>`))
    // Define the board template within the same set so game can include it
    template.Must(base.New("board").Parse(boardTemplate))
    index := template.Must(template.Must(base.Clone()).New("content").Parse(indexTemplate))
    game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<h1>Tic-Tac-Toe</h1>
<p>{{.Mode}}</p>
<div hx-ext="sse" sse-connect="/game/{{.ID}}/events">
  <div sse-swap="board" hx-target="#board" hx-swap="outerHTML">{{template "board" .Board}}</div>
</div>
<form hx-post="/game/{{.ID}}/reset" hx-target="#board" hx-swap="outerHTML" method="post"><button>New game</button></form>
<p><a href="/">Main menu</a></p>`))
    // Standalone board template used for fragment rendering
    board := template.Must(template.New("board_only").Parse(boardTemplate))
    return &templates{game: game, board: board, index: index}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
    var buf bytes.Buffer
    if name == "" {
        _ = t.Execute(&buf, data)
    } else {
        _ = t.ExecuteTemplate(&buf, name, data)
    }
    return buf.Bytes()
}

const indexTemplate = `<h1>Tic-Tac-Toe</h1>
<form action="/game" method="post">
  <label>Mode
    <select name="mode">
      <option value="pvp">Human vs Human</option>
      <option value="pva" selected>Human vs AI</option>
    </select>
  </label>
  <label>Play as
    <select name="side">
      <option value="X">X (goes first)</option>
      <option value="O">O (goes second)</option>
      <option value="random">Random</option>
    </select>
  </label>
  <label>Difficulty
    <select name="tier">
      <option value="easy">Easy - AI makes mistakes</option>
      <option value="medium">Medium - AI plays well most of the time</option>
      <option value="hard">Hard - AI plays perfectly</option>
    </select>
  </label>
  <button>Start</button>
</form>`

const boardTemplate = `
<div id="board">
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  <p class="status">{{.Status}}</p>
  {{range .Rows}}
  <div class="row">
    {{range .}}
      <form hx-post="/game/{{.GameID}}/play" hx-target="#board" hx-swap="outerHTML" method="post">
        <input type="hidden" name="pos" value="{{.Pos}}">
        <button type="submit"{{if not .Playable}} disabled{{end}}>{{.Label}}</button>
      </form>
    {{end}}
  </div>
  {{end}}
</div>
`
