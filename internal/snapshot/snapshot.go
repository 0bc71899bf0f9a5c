// Package snapshot encodes flow documents for the revision archive. Revisions
// are written once per save and read rarely, so the encoding favors size:
// msgpack followed by zstd.
package snapshot

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/guideflow/guideflow/pkg/guideflow/domain"
)

// Encode serializes and compresses a document.
func Encode(doc *domain.FlowDocument) ([]byte, error) {
	raw, err := msgpack.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("snapshot encode: %w", err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("snapshot encode: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}

// Decode reverses Encode.
func Decode(data []byte) (*domain.FlowDocument, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("snapshot decode: %w", err)
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("snapshot decode: %w", err)
	}
	var doc domain.FlowDocument
	if err := msgpack.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("snapshot decode: %w", err)
	}
	return &doc, nil
}
