// Package types
package types

// Token identifies one tracked asset. Identity fields are set once by the
// caller (default list or user-added); only Enabled is mutated afterwards,
// and only by the view layer.
type Token struct {
	ID       string `json:"id" bson:"id"`
	Symbol   string `json:"symbol" bson:"symbol"`
	Name     string `json:"name" bson:"name"`
	Color    string `json:"color" bson:"color"`
	ChainID  string `json:"chainId" bson:"chainId"`
	Address  string `json:"address,omitempty" bson:"address,omitempty"`
	Enabled  bool   `json:"enabled" bson:"enabled"`
	IsCustom bool   `json:"isCustom" bson:"isCustom"`
}
