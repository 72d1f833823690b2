package matroska

import (
	"github.com/bluenviron/gowebmlib/pkg/ebml"
)

// Header is the EBML header that opens a WebM stream.
type Header struct {
	DocType            string
	DocTypeVersion     uint64
	DocTypeReadVersion uint64
}

func (h Header) marshalSize() int {
	n := ebml.ElementSize(IDEBMLVersion, 1)
	n += ebml.ElementSize(IDEBMLReadVersion, 1)
	n += ebml.ElementSize(IDEBMLMaxIDLength, 1)
	n += ebml.ElementSize(IDEBMLMaxSizeLength, 1)
	n += ebml.ElementSize(IDDocType, len(h.DocType))
	n += ebml.ElementSize(IDDocTypeVersion, ebml.UIntWidth(h.DocTypeVersion))
	n += ebml.ElementSize(IDDocTypeReadVersion, ebml.UIntWidth(h.DocTypeReadVersion))
	return n
}

// Marshal writes the header.
func (h Header) Marshal(w *ebml.Writer) error {
	if err := w.WriteMasterStart(IDEBML, h.marshalSize()); err != nil {
		return err
	}
	if err := w.WriteUInt(IDEBMLVersion, 1); err != nil {
		return err
	}
	if err := w.WriteUInt(IDEBMLReadVersion, 1); err != nil {
		return err
	}
	if err := w.WriteUInt(IDEBMLMaxIDLength, 4); err != nil {
		return err
	}
	if err := w.WriteUInt(IDEBMLMaxSizeLength, 8); err != nil {
		return err
	}
	if err := w.WriteString(IDDocType, h.DocType); err != nil {
		return err
	}
	if err := w.WriteUInt(IDDocTypeVersion, h.DocTypeVersion); err != nil {
		return err
	}
	return w.WriteUInt(IDDocTypeReadVersion, h.DocTypeReadVersion)
}
