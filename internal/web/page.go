package web

const pageTemplate = `
{{define "head"}}<!doctype html>
<html><head><meta charset="utf-8"><title>Tasks</title>
<style>
body{font-family:sans-serif;max-width:46em;margin:2em auto;padding:0 1em}
form.entry label{display:block;margin:.4em 0}
table{border-collapse:collapse;width:100%;margin-top:1.5em}
td,th{border-bottom:1px solid #ddd;padding:.4em;text-align:left;vertical-align:top}
.notice{background:#fff3cd;border:1px solid #e0c36a;padding:.5em;margin:.5em 0}
.inline{display:inline}
.completed{text-decoration:line-through;color:#777}
</style></head><body>{{end}}

{{define "page"}}{{template "head"}}
<h1>Tasks</h1>
{{if .User}}<p>User {{.User}}</p>{{else}}<p>No current user set.</p>{{end}}
{{range .Notices}}<div class="notice" role="alert">{{.}}</div>
{{end}}
{{if and .User (not .View.Loaded)}}<p class="status">Tasks could not be loaded.</p>
{{end}}<form class="entry" method="post" action="/submit">
  {{if .View.Editing}}<p class="status">Editing task {{.View.EditingTaskID}}</p>{{end}}
  <label>Title <input name="title" value="{{.View.Form.Title}}"></label>
  <label>Description <textarea name="description">{{.View.Form.Description}}</textarea></label>
  <label>Category <select name="category">
  {{range .View.CategoryOptions}}<option value="{{.Value}}"{{if eq .Value $.View.Form.Category}} selected{{end}}>{{.Label}}</option>
  {{end}}</select></label>
  <label>Due date <input type="date" name="due_date" value="{{.View.Form.DueDate}}"></label>
  <button type="submit">{{.View.SubmitLabel}}</button>
</form>
<form class="inline" method="post" action="/clear"><button type="submit">Clear</button></form>
<table>
<thead><tr><th></th><th>Title</th><th>Description</th><th>Category</th><th></th></tr></thead>
<tbody>
{{range .View.Rows}}{{if .IsPlaceholder}}<tr><td colspan="5">{{.Placeholder}}</td></tr>
{{else}}<tr>
  <td><form class="inline" method="post" action="/tasks/{{.TaskID}}/toggle">
    <input type="hidden" name="completed" value="{{.Completed}}">
    <input type="checkbox" onchange="this.form.submit()"{{if .Checked}} checked{{end}}>
    <noscript><button type="submit">Toggle</button></noscript>
  </form></td>
  <td{{if .Checked}} class="completed"{{end}}>{{.Title}}</td>
  <td>{{.Description}}</td>
  <td>{{.CategoryName}}</td>
  <td>
    <form class="inline" method="post" action="/tasks/{{.TaskID}}/edit"><button type="submit">Edit</button></form>
    <a href="/tasks/{{.TaskID}}/delete">Delete</a>
  </td>
</tr>
{{end}}{{end}}</tbody>
</table>
</body></html>
{{end}}

{{define "confirm"}}{{template "head"}}
<p>{{.Question}}</p>
<form class="inline" method="post" action="/tasks/{{.ID}}/delete">
  <button type="submit" name="answer" value="yes">Yes</button>
  <button type="submit" name="answer" value="no">No</button>
</form>
</body></html>
{{end}}
`
