package events

import "github.com/arloliu/buildscan-decoder/wire"

// OutputSpan is one styled run of console output text.
type OutputSpan struct {
	Text  string
	Style *string
}

func decodeOutputSpan(r *wire.Reader, table *wire.StringTable) (OutputSpan, error) {
	flags, err := r.FlagsByte()
	if err != nil {
		return OutputSpan{}, err
	}
	var s OutputSpan
	if wire.BytePresent(flags, 0) {
		s.Text, err = table.Read(r)
		if err != nil {
			return OutputSpan{}, err
		}
	}
	if wire.BytePresent(flags, 1) {
		style, err := table.Read(r)
		if err != nil {
			return OutputSpan{}, err
		}
		s.Style = &style
	}
	return s, nil
}

// OutputStyledTextEvent is one chunk of console output, optionally
// attributed to an owning task or transform. A common sub-object carrying
// category/log-level is always present ahead of the optional spans and
// owner reference; the string table is shared across the whole body, not
// reset between the common header and the spans. Grounded on
// output_styled_text_event.rs.
type OutputStyledTextEvent struct {
	Category  *string
	LogLevel  *string
	Spans     []OutputSpan
	OwnerType *uint64
	OwnerID   *string
}

func (e OutputStyledTextEvent) WireID() uint16 { return WireOutputStyledText }

func decodeOutputStyledText(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	table := wire.NewStringTable()

	flags, err := r.FlagsByte()
	if err != nil {
		return nil, err
	}

	commonFlags, err := r.FlagsByte()
	if err != nil {
		return nil, err
	}

	var e OutputStyledTextEvent
	if wire.BytePresent(commonFlags, 0) {
		s, err := table.Read(r)
		if err != nil {
			return nil, err
		}
		e.Category = &s
	}
	if wire.BytePresent(commonFlags, 1) {
		s, err := table.Read(r)
		if err != nil {
			return nil, err
		}
		e.LogLevel = &s
	}

	if wire.BytePresent(flags, 0) {
		count, err := r.Uvarint()
		if err != nil {
			return nil, err
		}
		e.Spans = make([]OutputSpan, 0, count)
		for i := uint64(0); i < count; i++ {
			span, err := decodeOutputSpan(r, table)
			if err != nil {
				return nil, err
			}
			e.Spans = append(e.Spans, span)
		}
	}

	if wire.BytePresent(flags, 1) {
		ownerType, err := r.EnumOrdinal()
		if err != nil {
			return nil, err
		}
		e.OwnerType = &ownerType
		ownerID, err := table.Read(r)
		if err != nil {
			return nil, err
		}
		e.OwnerID = &ownerID
	}

	return e, nil
}
