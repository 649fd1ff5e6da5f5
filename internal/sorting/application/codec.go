package application

import (
	"net/url"

	"github.com/davicafu/sortlab/internal/sorting/domain"
)

// BuildLink calcula el enlace de ordenación de field a partir de la petición
// actual. Si field es la columna activa, el enlace invierte la dirección y el
// icono muestra la dirección vigente (no la siguiente). El resto de
// parámetros se conserva en su orden original.
func BuildLink(cfg domain.Config, req domain.Request, field, title, class, rel string) domain.SortLink {
	params := req.Query.Clone()

	sortBy, _ := params.Get(domain.SortParam)
	params.Del(domain.SortParam)
	rawDir, _ := params.Get(domain.DirParam)
	params.Del(domain.DirParam)
	sortDir := domain.ParseDirection(rawDir)

	entry := cfg.Entry(sortDir)

	icon := ""
	if field != "" && sortBy == field {
		params.Set(domain.DirParam, string(entry.Inverse))
		icon = entry.Icon
	}

	suffix := ""
	if params.Len() > 0 {
		suffix = "&" + params.Encode()
	}

	label := title
	inverseIcon := ""
	if icon != "" {
		label = title + " " + icon
		inverseIcon = cfg.Entry(entry.Inverse).Icon
	}

	return domain.SortLink{
		URL:         req.Path + "?" + domain.SortParam + "=" + url.QueryEscape(field) + suffix,
		Title:       title,
		Label:       label,
		Icon:        icon,
		InverseIcon: inverseIcon,
		Class:       class,
		Rel:         rel,
		QuerySuffix: suffix,
		CurrentDir:  sortDir,
	}
}

// BuildLinks calcula los enlaces de varias columnas para la misma petición.
func BuildLinks(cfg domain.Config, req domain.Request, columns []domain.Column) []domain.SortLink {
	links := make([]domain.SortLink, 0, len(columns))
	for _, col := range columns {
		title := col.Title
		if title == "" {
			title = Capitalize(col.Field)
		}
		links = append(links, BuildLink(cfg, req, col.Field, title, "", ""))
	}
	return links
}
