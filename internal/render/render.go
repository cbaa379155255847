// File: internal/render/render.go
package render

import (
	"crypto/md5"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"blog/internal/model"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Page 所有頁面共用的資料
type Page struct {
	Title   string
	User    *model.User
	IsAdmin bool
	Flashes []string
	CSRF    string
	Errors  []string
	Form    map[string]string

	Posts  []model.Post
	Post   *model.Post
	IsEdit bool
	// 同一作者的其他文章
	AuthorPosts []model.Post

	Status  int
	Message string
}

var funcs = template.FuncMap{
	"gravatar": Gravatar,
	// 文章內容由管理員撰寫，允許 HTML
	"safeHTML": func(s string) template.HTML { return template.HTML(s) },
}

// Renderer 每個頁面各自與 layout 組成一組 template
type Renderer struct {
	pages map[string]*template.Template
}

// New 解析內嵌的所有頁面
func New() (*Renderer, error) {
	return newFromFS(templateFS)
}

func newFromFS(fsys fs.FS) (*Renderer, error) {
	files, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("render.New: %w", err)
	}
	r := &Renderer{pages: map[string]*template.Template{}}
	for _, f := range files {
		if f == layoutFile {
			continue
		}
		t, err := template.New("").Funcs(funcs).ParseFS(fsys, layoutFile, f)
		if err != nil {
			return nil, fmt.Errorf("render.New: %s: %w", f, err)
		}
		r.pages[strings.TrimPrefix(f, "templates/")] = t
	}
	return r, nil
}

// Render 實作 echo.Renderer
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("render: template %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// Gravatar 留言者頭像網址
func Gravatar(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=100&d=retro&r=g", sum)
}
