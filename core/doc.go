// Package core contains the storefront domain contracts and the service that
// orchestrates carts, catalog administration, recipes, and inquiries. Store,
// transport, and notification adapters depend on this package; core does not
// depend on them.
package core
