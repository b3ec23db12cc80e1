package rest

import "html/template"

// The public page and the product page are the only HTML surfaces; the
// editor canvas and the preview frame consume the same PageView as JSON and
// bring their own chrome.

// Media is embedded as data URIs, which the contextual autoescaper would
// otherwise reject as unsafe URLs.
var templateFuncs = template.FuncMap{
	"dataURI": func(s string) template.URL { return template.URL(s) },
}

var pageTemplate = template.Must(template.New("page").Funcs(templateFuncs).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.StoreName}}</title>
</head>
<body>
<header class="store-header">
{{if .LogoSrc}}<img class="store-logo" src="{{dataURI .LogoSrc}}" alt="{{.StoreName}}">{{end}}
<h1>{{.StoreName}}</h1>
</header>
{{if .Placeholder}}
<section class="placeholder"><p>{{.Placeholder}}</p></section>
{{end}}
{{range .Sections}}
{{if .Hero}}
<section class="hero" data-transition="{{.Hero.Transition}}" data-autoplay="{{.Hero.Autoplay}}">
{{if .Hero.Placeholder}}
<div class="hero-placeholder">{{.Hero.Placeholder}}</div>
{{else}}
<div class="carousel">
{{range .Hero.Slides}}
{{if eq .Kind "video"}}<video class="slide" src="{{dataURI .Src}}"></video>{{else}}<img class="slide" src="{{dataURI .Src}}" width="{{.Width}}" height="{{.Height}}">{{end}}
{{end}}
</div>
{{end}}
<h2>{{.Hero.Title}}</h2>
{{if .Hero.Subtitle}}<p>{{.Hero.Subtitle}}</p>{{end}}
{{if .Hero.CTALabel}}<button class="cta">{{.Hero.CTALabel}}</button>{{end}}
</section>
{{end}}
{{if .Grid}}
<section class="grid">
{{if .Grid.Title}}<h2>{{.Grid.Title}}</h2>{{end}}
{{if .Grid.Subtitle}}<p>{{.Grid.Subtitle}}</p>{{end}}
<div class="cells">
{{range .Grid.Cells}}
<a class="cell" href="/s/{{$.StoreID}}/p/{{.ID}}">
{{if .PhotoSrc}}<img src="{{dataURI .PhotoSrc}}" alt="{{.Title}}">{{end}}
<span class="title">{{.Title}}</span>
<span class="price">{{.Price}} {{.Currency}}</span>
</a>
{{end}}
</div>
</section>
{{end}}
{{if .Banner}}
<section class="banner">
<h2>{{.Banner.Title}}</h2>
{{if .Banner.Subtitle}}<p>{{.Banner.Subtitle}}</p>{{end}}
</section>
{{end}}
{{if .Testimonials}}
<section class="testimonials">
{{range .Testimonials.Cards}}
<blockquote class="card"><p>{{.Text}}</p><cite>{{.Name}}</cite></blockquote>
{{end}}
</section>
{{end}}
{{end}}
<footer class="social">
{{with .Social}}
{{if .Instagram}}<a href="{{.Instagram}}">Instagram</a>{{end}}
{{if .Facebook}}<a href="{{.Facebook}}">Facebook</a>{{end}}
{{if .TikTok}}<a href="{{.TikTok}}">TikTok</a>{{end}}
{{if .WhatsApp}}<a href="{{.WhatsApp}}">WhatsApp</a>{{end}}
{{if .Email}}<a href="mailto:{{.Email}}">Email</a>{{end}}
{{end}}
</footer>
</body>
</html>
`))

var productTemplate = template.Must(template.New("product").Funcs(templateFuncs).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Hero.Title}}</title>
</head>
<body>
<section class="hero product" data-transition="{{.Hero.Transition}}" data-autoplay="{{.Hero.Autoplay}}">
{{if .Hero.Placeholder}}
<div class="hero-placeholder">{{.Hero.Placeholder}}</div>
{{else}}
<div class="carousel">
{{range .Hero.Slides}}
<img class="slide" src="{{dataURI .Src}}" width="{{.Width}}" height="{{.Height}}">
{{end}}
</div>
{{end}}
<h1>{{.Hero.Title}}</h1>
{{if .Description}}<p>{{.Description}}</p>{{end}}
<span class="price">{{.Price}} {{.Currency}}</span>
<p><a href="/s/{{.StoreID}}">Back to store</a></p>
</section>
</body>
</html>
`))
