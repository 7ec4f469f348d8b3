// Package auth provides the session guard of the back office.
//
// Every path under /admin requires a valid session cookie, except the login
// page. Unauthenticated requests are redirected to the login page and an
// authenticated visit of the login page goes to the dashboard. The session
// user is added to fiber.Locals as "CurrentUser" for handlers and templates.
// Storefront paths pass through untouched.
//
// Usage:
//
//	app.Use(authmiddleware.Middleware)
package auth
