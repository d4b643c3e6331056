package common

// Bridge keys used by the stores. They mirror the storage keys the web
// storefront kept in browser local storage.
const (
	CartKey     = "cart"
	TokenKey    = "token"
	IdentityKey = "user"
)

// VisitorCookieName carries the visitor id that selects a namespaced set of
// stores in the storefront API.
const VisitorCookieName = "furnistore_visitor"
