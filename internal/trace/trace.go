package trace

// EnvVar names the trace output file
const EnvVar = "CMDSUGGEST_TRACE"
