// Package webstore retrieves packaged extensions from the Chrome Web
// Store's update endpoint and converts them into plain ZIP archives.
//
// The update endpoint is unofficial in the sense that it is meant for
// browsers checking for extension updates, not for direct downloads.
// It only answers requests that look like a genuine Chrome client: a
// Chrome User-Agent and a prodversion query parameter recent enough to
// be served the current container format. The Retriever therefore
// impersonates a fixed client identity on the initial request and on
// every redirect hop to the signed CDN location.
//
// A retrieval writes exactly two files: the raw container
// (<name>.crx) and the stripped archive (<name>.zip). If the
// container turns out to be malformed the container file is kept for
// diagnosis and no archive is written.
//
// The Retriever holds no mutable state across invocations; distinct
// invocations may run concurrently as long as the caller guarantees
// distinct destination filenames.
package webstore
