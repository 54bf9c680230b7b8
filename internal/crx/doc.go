// Package crx provides parsing and conversion of Chrome extension
// container (CRX) files.
//
// A CRX file is a standard ZIP archive prefixed with a vendor header.
// Two incompatible header layouts exist:
//
//	CRX2: "Cr24" | version=2 | pubkey length | signature length | pubkey | signature | zip
//	CRX3: "Cr24" | version=3 | header length | protobuf header          | zip
//
// All integer fields are 32-bit little-endian. The package computes the
// byte offset where the ZIP data begins and strips everything before it.
// It does not verify signatures and does not decode the CRX3 protobuf
// header; only the declared sizes are read.
//
// Parsing is a pure function of the input buffer. Length fields are
// untrusted: any field that would place the archive offset past the end
// of the buffer is rejected as a *FormatError rather than clamped.
package crx
