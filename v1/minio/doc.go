// Package minio archives uploaded source documents in MinIO or any
// S3-compatible store.
//
// Objects are keyed by owning ID under a configurable prefix, so re-uploading
// a document overwrites its previous copy:
//
//	archive, err := minio.NewClient(cfg, log)
//	key, err := archive.ArchiveDocument(ctx, 42, file, header.Size)
//	// key == "documents/42.pdf"
package minio
