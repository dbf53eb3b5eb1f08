package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"extreme/internal/currency"
	"extreme/internal/store"
)

// placeholderImage is a gray data-URI shown when a product image cannot be
// fetched, so the print layout keeps its grid.
const placeholderImage = "data:image/svg+xml;base64," +
	"PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHdpZHRoPSIyMDAiIGhlaWdo" +
	"dD0iMjAwIj48cmVjdCB3aWR0aD0iMTAwJSIgaGVpZ2h0PSIxMDAlIiBmaWxsPSIjZTVlN2ViIi8+PC9zdmc+"

// ImageFetcher resolves a product image URL to raw bytes and a MIME type.
type ImageFetcher func(ctx context.Context, url string) ([]byte, string, error)

// HTTPImageFetcher fetches images over HTTP with a per-image timeout.
func HTTPImageFetcher(client *http.Client) ImageFetcher {
	return func(ctx context.Context, url string) ([]byte, string, error) {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, "", err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, "", err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, "", fmt.Errorf("image fetch: status %d", resp.StatusCode)
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, 5<<20))
		if err != nil {
			return nil, "", err
		}
		mime := resp.Header.Get("Content-Type")
		if mime == "" {
			mime = http.DetectContentType(body)
		}
		return body, mime, nil
	}
}

type printableProduct struct {
	Name          string
	SKU           string
	Brand         string
	Category      string
	Price         string
	Stock         int
	Description   string
	Dimensions    string
	Compatibility string
	ImageSrc      template.URL
}

type printableDoc struct {
	Title       string
	GeneratedAt string
	Products    []printableProduct
}

var printableTemplate = template.Must(template.New("catalog").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 24px; color: #111; }
h1 { font-size: 22px; }
.meta { color: #666; font-size: 12px; margin-bottom: 16px; }
.grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 16px; }
.card { border: 1px solid #ddd; border-radius: 8px; padding: 12px; page-break-inside: avoid; }
.card img { width: 100%; height: 140px; object-fit: contain; }
.name { font-weight: bold; margin: 8px 0 4px; }
.price { color: #b91c1c; font-weight: bold; }
.detail { font-size: 12px; color: #444; }
@media print { .card { break-inside: avoid; } }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="meta">Generado el {{.GeneratedAt}} · {{len .Products}} productos</div>
<div class="grid">
{{range .Products}}<div class="card">
<img src="{{.ImageSrc}}" alt="{{.Name}}">
<div class="name">{{.Name}}</div>
<div class="price">{{.Price}}</div>
{{if .SKU}}<div class="detail">SKU: {{.SKU}}</div>{{end}}
{{if .Brand}}<div class="detail">Marca: {{.Brand}}</div>{{end}}
<div class="detail">Categoría: {{.Category}}</div>
<div class="detail">Stock: {{.Stock}}</div>
{{if .Description}}<div class="detail">{{.Description}}</div>{{end}}
{{if .Dimensions}}<div class="detail">Dimensiones: {{.Dimensions}}</div>{{end}}
{{if .Compatibility}}<div class="detail">Compatibilidad: {{.Compatibility}}</div>{{end}}
</div>
{{end}}</div>
</body>
</html>
`))

// WritePrintableHTML renders the products as a self-contained HTML document:
// every image is fetched and inlined as a base64 data URI so the file prints
// without network access. A failed fetch falls back to a placeholder.
func WritePrintableHTML(ctx context.Context, w io.Writer, products []store.Product, fetch ImageFetcher) error {
	doc := printableDoc{
		Title:       "Catálogo de Productos",
		GeneratedAt: time.Now().Format("02/01/2006"),
	}
	for _, p := range products {
		pp := printableProduct{
			Name:          p.Name,
			SKU:           p.SKU,
			Brand:         p.Brand,
			Category:      p.Category,
			Price:         currency.FormatPrice(p.Price),
			Stock:         p.Stock,
			Description:   p.Description,
			Dimensions:    p.Dimensions,
			Compatibility: p.Compatibility,
			ImageSrc:      template.URL(placeholderImage),
		}
		if p.ImageURL != "" && fetch != nil {
			if data, mime, err := fetch(ctx, p.ImageURL); err == nil {
				src := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
				pp.ImageSrc = template.URL(src)
			}
		}
		doc.Products = append(doc.Products, pp)
	}
	return printableTemplate.Execute(w, doc)
}
