package site

// layoutTemplate wraps every page. Pages define "title" and "content".
const layoutTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{template "title" .}} | {{.SiteName}}</title>
  <style>
    body { font-family: system-ui, sans-serif; margin: 0; color: #1f2933; }
    header, main, footer { max-width: 1080px; margin: 0 auto; padding: 1rem; }
    nav a { margin-right: 1rem; }
    .grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(260px, 1fr)); gap: 1rem; }
    .emprendimiento-card { border: 1px solid #d9e2ec; border-radius: 8px; padding: 1rem; }
    .flash-message { padding: .75rem 1rem; border-radius: 6px; background: #e3f9e5; }
    .flash-message.error { background: #ffe3e3; }
    .stats { display: flex; gap: 2rem; }
    .stat-number { font-size: 2rem; font-weight: 700; }
  </style>
</head>
<body>
  <header>
    <nav id="navMenu">
      <a href="/">Inicio</a>
      <a href="/lista">Emprendimientos</a>
      <a href="/registro">Registrar</a>
    </nav>
  </header>
  <main>
    {{template "content" .}}
  </main>
  <footer><small>{{.SiteName}}</small></footer>
</body>
</html>`

const indexTemplate = `{{define "title"}}Inicio{{end}}
{{define "content"}}
<section class="hero">
  <h1 class="hero-title">Impulsa tu <span class="highlight">Emprendimiento</span></h1>
  <p>Conoce los proyectos creados por estudiantes.</p>
</section>

<section class="stats">
  <div><span class="stat-number" id="total-emprendimientos">{{.Stats.Total}}</span> emprendimientos</div>
  <div><span class="stat-number" id="total-categorias">{{.Stats.TotalCategories}}</span> categorías</div>
  <div><span class="stat-number" id="total-estudiantes">{{.Stats.TotalStudents}}</span> estudiantes</div>
</section>

{{if .CategoryCounts}}
<section>
  <h2>Por categoría</h2>
  <ul>
    {{range .CategoryCounts}}<li>{{.Name}}: {{.Count}}</li>{{end}}
  </ul>
</section>
{{end}}

<section>
  <h2>Destacados</h2>
  {{if .Featured}}
  <div class="grid">
    {{range .Featured}}
    <article class="emprendimiento-card">
      <h3><a href="/detalle/{{.ID}}">{{.Name}}</a></h3>
      <p>{{.Category}} · {{.OwnerName}}</p>
    </article>
    {{end}}
  </div>
  {{else}}
  <p class="empty-state">Aún no hay emprendimientos registrados.</p>
  {{end}}
</section>

<script>
  (function () {
    if (!window.WebSocket) return;
    var ids = {total: "total-emprendimientos", total_categorias: "total-categorias", total_emprendedores: "total-estudiantes"};
    var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws/stats");
    ws.onmessage = function (ev) {
      var data = JSON.parse(ev.data);
      Object.keys(ids).forEach(function (k) {
        var el = document.getElementById(ids[k]);
        if (el && String(data[k]) !== el.textContent) el.textContent = data[k];
      });
    };
  })();
</script>
{{end}}`

const registroTemplate = `{{define "title"}}Registrar emprendimiento{{end}}
{{define "content"}}
<h1>Registrar emprendimiento</h1>

{{if .Errors}}
<div class="flash-message error">
  <ul>{{range .Errors}}<li>{{.}}</li>{{end}}</ul>
</div>
{{end}}

<form method="post" action="/registro" data-validate>
  <label>Nombre del emprendimiento
    <input type="text" name="nombre" value="{{.Form.Name}}" data-rules="required|min:3">
  </label>
  <label>Descripción
    <textarea name="descripcion" data-rules="required|min:10">{{.Form.Description}}</textarea>
  </label>
  <label>Categoría
    <select name="categoria">
      {{$cat := .Form.Category}}
      {{range .Categories}}<option value="{{.}}"{{if eq . $cat}} selected{{end}}>{{.}}</option>{{end}}
    </select>
  </label>
  <label>Nombre del estudiante <input type="text" name="estudiante_nombre" value="{{.Form.OwnerName}}"></label>
  <label>Email <input type="email" name="email" value="{{.Form.Email}}"></label>
  <label>Teléfono <input type="tel" name="telefono" value="{{.Form.Phone}}"></label>
  <label>Universidad <input type="text" name="universidad" value="{{.Form.University}}"></label>
  <label>Carrera <input type="text" name="carrera" value="{{.Form.Career}}"></label>
  <label>Semestre <input type="number" name="semestre" min="1" value="{{.Form.Semester}}"></label>
  <label>Instagram <input type="text" name="instagram" value="{{.Form.Instagram}}"></label>
  <label>Facebook <input type="text" name="facebook" value="{{.Form.Facebook}}"></label>
  <label>TikTok <input type="text" name="tiktok" value="{{.Form.TikTok}}"></label>
  <label>Sitio web <input type="text" name="sitio_web" value="{{.Form.Website}}"></label>
  <label>Inversión inicial <input type="number" step="any" name="inversion_inicial" value="{{.Form.InitialInvestment}}"></label>
  <label>Tiempo funcionando
    <select name="tiempo_funcionando">
      {{$tr := .Form.TimeRunning}}
      {{range .TimeRunning}}<option value="{{.}}"{{if eq . $tr}} selected{{end}}>{{.}}</option>{{end}}
    </select>
  </label>
  <label>Empleados <input type="number" name="empleados" min="1" value="{{.Form.Employees}}"></label>
  <label>Estado
    <select name="estado">
      {{$st := .Form.Stage}}
      {{range .Stages}}<option value="{{.}}"{{if eq . $st}} selected{{end}}>{{.}}</option>{{end}}
    </select>
  </label>
  <button type="submit" class="btn btn-primary">Registrar</button>
</form>
{{end}}`

const listaTemplate = `{{define "title"}}Emprendimientos{{end}}
{{define "content"}}
<h1>Emprendimientos</h1>

{{if .Success}}<div class="flash-message">{{.Success}}</div>{{end}}
{{if .Error}}<div class="flash-message error">{{.Error}}</div>{{end}}

<form method="get" action="/lista" class="search-bar">
  <input type="text" id="search-input" name="busqueda" value="{{.State.Query}}" placeholder="Buscar por nombre, descripción o estudiante">
  <select id="categoria-filter" name="categoria">
    <option value="">Todas las categorías</option>
    {{$cat := .State.Category}}
    {{range .Categories}}<option value="{{.}}"{{if eq . $cat}} selected{{end}}>{{.}}</option>{{end}}
  </select>
  {{if .ResetShown}}
  <a class="btn btn-secondary btn-reset" href="/lista">Ver Todos</a>
  {{else}}
  <button type="submit" class="btn btn-primary">Buscar</button>
  {{end}}
</form>

<p><span id="results-count">{{.Count}}</span> resultados</p>

<div class="grid" id="emprendimientos-grid">
  {{range .Cards}}
  <article class="emprendimiento-card"{{if not .Visible}} style="display: none"{{end}}
    data-nombre="{{lower .Name}}" data-descripcion="{{lower .Description}}"
    data-estudiante="{{lower .OwnerName}}" data-categoria="{{.Category}}">
    <h3><a href="/detalle/{{.ID}}">{{.Name}}</a></h3>
    <p>{{.Category}}</p>
    <p>{{truncate .Description 140}}</p>
    <p><small>{{.OwnerName}}</small></p>
  </article>
  {{end}}
</div>

<div class="empty-state"{{if not .EmptyShown}} style="display: none"{{end}}>
  <p>No se encontraron emprendimientos.</p>
</div>
{{end}}`

const detalleTemplate = `{{define "title"}}{{.Listing.Name}}{{end}}
{{define "content"}}
<article class="detalle">
  <h1>{{.Listing.Name}}</h1>
  <p>{{.Listing.Category}} · {{.Listing.Stage}} · {{.Listing.TimeRunning}}</p>
  <div class="descripcion">{{.Description}}</div>

  <h2>Estudiante</h2>
  <p>{{.Listing.OwnerName}}{{if .Listing.University}} · {{.Listing.University}}{{end}}{{if .Listing.Career}} · {{.Listing.Career}}{{end}}{{if .Listing.Semester}} (semestre {{.Listing.Semester}}){{end}}</p>
  {{if .Listing.Email}}<p><a href="mailto:{{.Listing.Email}}">{{.Listing.Email}}</a></p>{{end}}

  <h2>Datos</h2>
  <ul>
    <li>Empleados: {{.Listing.Employees}}</li>
    <li>Inversión inicial: {{printf "%.2f" .Listing.InitialInvestment}}</li>
    {{if not .Listing.RegisteredAt.IsZero}}<li>Registrado: {{.Listing.RegisteredAt.Format "2006-01-02"}}</li>{{end}}
  </ul>

  {{if .Links}}
  <h2>Redes</h2>
  <ul>
    {{range .Links}}<li><a href="{{.URL}}" rel="noopener" target="_blank">{{.Label}}</a></li>{{end}}
  </ul>
  {{end}}

  <p><a href="/lista">Volver a la lista</a></p>
</article>
{{end}}`
