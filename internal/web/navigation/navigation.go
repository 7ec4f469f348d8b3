// Package navigation builds the title, active menu entry and breadcrumbs of a page.
package navigation

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	ActiveSection string
	ActivePage    string
	Breadcrumbs   []BreadcrumbItem
	PageTitle     string
	SiteTitle     string
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activeSection, activePage string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		ActivePage:    activePage,
		Breadcrumbs:   make([]BreadcrumbItem, 0),
	}
}

// WithSiteTitle sets the site name appended to the document title.
func (c *Context) WithSiteTitle(title string) *Context {
	c.SiteTitle = title

	return c
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// DocumentTitle is the <title> of the page: "Page | Site", or whichever is set.
func (c *Context) DocumentTitle() string {
	switch {
	case c.PageTitle == "":
		return c.SiteTitle
	case c.SiteTitle == "" || c.SiteTitle == c.PageTitle:
		return c.PageTitle
	default:
		return c.PageTitle + " | " + c.SiteTitle
	}
}

// IsActive checks if the given section and page match the current context.
func (c *Context) IsActive(section, page string) bool {
	return c.ActiveSection == section && c.ActivePage == page
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}
