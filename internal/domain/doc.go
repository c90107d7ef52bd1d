// Package domain defines the data models, contracts and error taxonomy shared
// across the bridge. It contains plain types (types), contracts (interfaces)
// and the structured Error only.
package domain
