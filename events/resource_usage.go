package events

import "github.com/arloliu/buildscan-decoder/wire"

// NormalizedSamplesEvent is a fixed-cadence series of normalized sample
// bytes with an optional high-water mark. Grounded on resource_usage.rs.
type NormalizedSamplesEvent struct {
	Samples []byte
	Max     *int64
}

func decodeNormalizedSamples(r *wire.Reader) (NormalizedSamplesEvent, error) {
	flags, err := r.FlagsByte()
	if err != nil {
		return NormalizedSamplesEvent{}, err
	}
	var s NormalizedSamplesEvent
	if wire.BytePresent(flags, 0) {
		s.Samples, err = r.ByteArray()
		if err != nil {
			return NormalizedSamplesEvent{}, err
		}
	}
	if wire.BytePresent(flags, 1) {
		v, err := r.ZigzagI64()
		if err != nil {
			return NormalizedSamplesEvent{}, err
		}
		s.Max = &v
	}
	return s, nil
}

// IndexedNormalizedSamplesEvent pairs each sample series with the indices
// (e.g. per-process) it belongs to. Grounded on resource_usage.rs.
type IndexedNormalizedSamplesEvent struct {
	Indices [][]int32
	Samples [][]byte
	Max     *int64
}

func decodeIndexedNormalizedSamples(r *wire.Reader) (IndexedNormalizedSamplesEvent, error) {
	flags, err := r.FlagsByte()
	if err != nil {
		return IndexedNormalizedSamplesEvent{}, err
	}
	var s IndexedNormalizedSamplesEvent
	if wire.BytePresent(flags, 0) {
		s.Indices, err = r.ListOfListOfI32()
		if err != nil {
			return IndexedNormalizedSamplesEvent{}, err
		}
	}
	if wire.BytePresent(flags, 1) {
		s.Samples, err = r.ListOfByteArrays()
		if err != nil {
			return IndexedNormalizedSamplesEvent{}, err
		}
	}
	if wire.BytePresent(flags, 2) {
		v, err := r.ZigzagI64()
		if err != nil {
			return IndexedNormalizedSamplesEvent{}, err
		}
		s.Max = &v
	}
	return s, nil
}

// ProcessEvent identifies one monitored OS process. Grounded on
// resource_usage.rs.
type ProcessEvent struct {
	ID          *int64
	Name        *string
	DisplayName *string
	ProcessType *uint64
}

func decodeProcess(r *wire.Reader, table *wire.StringTable) (ProcessEvent, error) {
	flags, err := r.FlagsByte()
	if err != nil {
		return ProcessEvent{}, err
	}
	var p ProcessEvent
	if wire.BytePresent(flags, 0) {
		v, err := r.ZigzagI64()
		if err != nil {
			return ProcessEvent{}, err
		}
		p.ID = &v
	}
	if wire.BytePresent(flags, 1) {
		s, err := table.Read(r)
		if err != nil {
			return ProcessEvent{}, err
		}
		p.Name = &s
	}
	if wire.BytePresent(flags, 2) {
		s, err := table.Read(r)
		if err != nil {
			return ProcessEvent{}, err
		}
		p.DisplayName = &s
	}
	if wire.BytePresent(flags, 3) {
		v, err := r.EnumOrdinal()
		if err != nil {
			return ProcessEvent{}, err
		}
		p.ProcessType = &v
	}
	return p, nil
}

// ResourceUsageEvent is a periodic CPU/memory sampling snapshot. Its body
// interleaves 4 conditional outer fields with exactly 10 unconditional
// NormalizedSamples reads and 2 unconditional IndexedNormalizedSamples
// reads, in a fixed sequence that has no relation to the outer flag bit
// order. Grounded on resource_usage.rs.
type ResourceUsageEvent struct {
	Timestamps           [][]byte
	BuildProcessCPU      [3]NormalizedSamplesEvent
	AllProcessesCPU      []byte
	BuildProcessMemory   [3]NormalizedSamplesEvent
	TotalSystemMemory    *int64
	SystemMemory         [4]NormalizedSamplesEvent
	Processes            []ProcessEvent
	TopProcessesByCPU    IndexedNormalizedSamplesEvent
	TopProcessesByMemory IndexedNormalizedSamplesEvent
}

func (e ResourceUsageEvent) WireID() uint16 { return WireResourceUsage }

func decodeResourceUsage(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	table := wire.NewStringTable()
	flags, err := r.FlagsByte()
	if err != nil {
		return nil, err
	}

	var e ResourceUsageEvent

	if wire.BytePresent(flags, 0) {
		e.Timestamps, err = r.ListOfByteArrays()
		if err != nil {
			return nil, err
		}
	}
	for i := range e.BuildProcessCPU {
		v, err := decodeNormalizedSamples(r)
		if err != nil {
			return nil, err
		}
		e.BuildProcessCPU[i] = v
	}
	if wire.BytePresent(flags, 1) {
		e.AllProcessesCPU, err = r.ByteArray()
		if err != nil {
			return nil, err
		}
	}
	for i := range e.BuildProcessMemory {
		v, err := decodeNormalizedSamples(r)
		if err != nil {
			return nil, err
		}
		e.BuildProcessMemory[i] = v
	}
	if wire.BytePresent(flags, 2) {
		v, err := r.ZigzagI64()
		if err != nil {
			return nil, err
		}
		e.TotalSystemMemory = &v
	}
	for i := range e.SystemMemory {
		v, err := decodeNormalizedSamples(r)
		if err != nil {
			return nil, err
		}
		e.SystemMemory[i] = v
	}
	if wire.BytePresent(flags, 3) {
		count, err := r.Uvarint()
		if err != nil {
			return nil, err
		}
		e.Processes = make([]ProcessEvent, 0, count)
		for i := uint64(0); i < count; i++ {
			p, err := decodeProcess(r, table)
			if err != nil {
				return nil, err
			}
			e.Processes = append(e.Processes, p)
		}
	}
	e.TopProcessesByCPU, err = decodeIndexedNormalizedSamples(r)
	if err != nil {
		return nil, err
	}
	e.TopProcessesByMemory, err = decodeIndexedNormalizedSamples(r)
	if err != nil {
		return nil, err
	}
	return e, nil
}
