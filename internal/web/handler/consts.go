package handler

const (
	// BaseLayout is the layout of the storefront pages.
	BaseLayout = "layouts/base"

	// AdminLayout is the layout of the back office pages.
	AdminLayout = "layouts/admin"

	// RootPath is the root path the route group.
	RootPath = "/"

	// RouterRootPath is the path of a route group's own root.
	RouterRootPath = "/"

	// AdminPath prefixes every back office route.
	AdminPath = RootPath + "admin"

	// ErrNilACDFatalLogMsg is used if app or cfg or deps var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or deps is nil"

	// NavSectionShop is the navigation section of the storefront pages.
	NavSectionShop = "shop"
	// NavSectionAdmin is the navigation section of the back office pages.
	NavSectionAdmin = "admin"
	// NavPageHome is the navigation page key of the storefront home.
	NavPageHome = "home"

	// BreadcrumbHomeLbl is the label of the storefront home breadcrumb.
	BreadcrumbHomeLbl = "Accueil"
	// BreadcrumbAdminLbl is the label of the back office home breadcrumb.
	BreadcrumbAdminLbl = "Administration"

	// ErrInvalidID is shown when the id path parameter is not a positive number.
	ErrInvalidID = "Identifiant invalide"
	// ErrUnexpected is shown when the backend failed.
	ErrUnexpected = "Une erreur est survenue"
)
