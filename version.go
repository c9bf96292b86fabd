package bones

// Version is the release of the bones runtime.
const Version = "0.1.0"
