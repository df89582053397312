// Package pdf extracts plain text from uploaded PDF documents, page by page,
// for the ingestion pipeline.
package pdf
