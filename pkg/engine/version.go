package engine

// Version is the draftquote release version.
const Version = "0.1.0"
