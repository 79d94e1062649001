// Package types defines the data model for the draft quotation engine: the
// DraftQuote entity graph assembled step by step in the quotation wizard,
// immutable priced Options, pricing breakdowns, local cache entries,
// configuration, and standard errors shared across the module.
package types
