package common

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// GeneratorName identifies this generator in "Code generated" headers.
const GeneratorName = "observable-generator"

// GeneratedHeader is the first line of every file the generator writes.
const GeneratedHeader = "// Code generated by " + GeneratorName + ". DO NOT EDIT."
