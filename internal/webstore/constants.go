package webstore

// DefaultEndpoint is the Chrome Web Store update-check endpoint.
const DefaultEndpoint = "https://clients2.google.com/service/update2/crx"

// DefaultProdVersion is the Chrome version impersonated by default.
// It must stay recent enough for the endpoint to serve CRX3
// containers; versions older than ~70 are answered with 204.
const DefaultProdVersion = "114.0.5735.133"

// DefaultOutputDir is the directory extensions are written to when the
// caller does not choose one.
const DefaultOutputDir = "extensions"

// extensionIDLength is the length of a web store extension ID. IDs
// are the first half of a SHA-256 hash of the extension's public key,
// transliterated into the letters a-p.
const extensionIDLength = 32

// userAgentFormat renders a Chrome User-Agent from a platform token
// and a prodversion.
const userAgentFormat = "Mozilla/5.0 (%s) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%s Safari/537.36"
