package placeholder

// tagRegexp matches {{name}} or ${ name }. A tag name is a run of
// non-brace characters; the character class keeps the scan free of
// quantifier ambiguity, do not widen it.
const tagRegexp = `\{\{([^{}]+?)\}\}|\$\{\s*([^{}]+?)\s*\}`
