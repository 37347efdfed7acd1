package events

import "github.com/arloliu/buildscan-decoder/wire"

// TransformIdentificationEvent names a transform execution's action class
// and the artifact attributes it transforms between. Grounded on
// transform_identification.rs.
type TransformIdentificationEvent struct {
	ID                  int64
	ComponentIdentity   int32
	InputArtifactName   string
	TransformActionClass string
	FromAttributes      []int32
	ToAttributes        []int32
}

func (e TransformIdentificationEvent) WireID() uint16 { return WireTransformIdentification }

func decodeTransformIdentification(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	table := wire.NewStringTable()
	flags, err := r.FlagsByte()
	if err != nil {
		return nil, err
	}

	var e TransformIdentificationEvent
	if wire.BytePresent(flags, 0) {
		e.ID, err = r.ZigzagI64()
		if err != nil {
			return nil, err
		}
	}
	if wire.BytePresent(flags, 1) {
		e.ComponentIdentity, err = r.PositiveVarintI32()
		if err != nil {
			return nil, err
		}
	}
	if wire.BytePresent(flags, 2) {
		e.InputArtifactName, err = table.Read(r)
		if err != nil {
			return nil, err
		}
	}
	if wire.BytePresent(flags, 3) {
		e.TransformActionClass, err = table.Read(r)
		if err != nil {
			return nil, err
		}
	}
	if wire.BytePresent(flags, 4) {
		e.FromAttributes, err = r.ListOfPositiveVarintI32()
		if err != nil {
			return nil, err
		}
	}
	if wire.BytePresent(flags, 5) {
		e.ToAttributes, err = r.ListOfPositiveVarintI32()
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

// TransformExecutionStartedEvent marks the start of one transform
// execution. No flags word: the id is always present. Grounded on
// transform_execution_started.rs.
type TransformExecutionStartedEvent struct {
	ID int64
}

func (e TransformExecutionStartedEvent) WireID() uint16 { return WireTransformExecutionStarted }

func decodeTransformExecutionStarted(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	id, err := r.ZigzagI64()
	if err != nil {
		return nil, err
	}
	return TransformExecutionStartedEvent{ID: id}, nil
}

// TransformExecutionFinishedEvent records a transform execution's outcome.
// Its flags word is the wide fixed big-endian form, like TaskFinished.
// Grounded on transform_execution_finished.rs.
type TransformExecutionFinishedEvent struct {
	ID                            int64
	FailureID                     *int64
	Outcome                       *uint64
	ExecutionReasons              []string
	CachingDisabledReasonCategory *string
	CachingDisabledExplanation    *string
	OriginBuildInvocationID       *string
	OriginBuildCacheKey           []byte
	OriginExecutionTime           *int64
}

func (e TransformExecutionFinishedEvent) WireID() uint16 { return WireTransformExecutionFinished }

func decodeTransformExecutionFinished(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	table := wire.NewStringTable()
	flags, err := r.FlagsU16BE()
	if err != nil {
		return nil, err
	}

	var e TransformExecutionFinishedEvent
	if wire.FieldPresent(flags, 0) {
		e.ID, err = r.ZigzagI64()
		if err != nil {
			return nil, err
		}
	}
	if wire.FieldPresent(flags, 1) {
		v, err := r.PositiveVarintI64()
		if err != nil {
			return nil, err
		}
		e.FailureID = &v
	}
	if wire.FieldPresent(flags, 2) {
		v, err := r.EnumOrdinal()
		if err != nil {
			return nil, err
		}
		e.Outcome = &v
	}
	if wire.FieldPresent(flags, 3) {
		e.ExecutionReasons, err = table.ReadList(r)
		if err != nil {
			return nil, err
		}
	}
	if wire.FieldPresent(flags, 4) {
		s, err := table.Read(r)
		if err != nil {
			return nil, err
		}
		e.CachingDisabledReasonCategory = &s
	}
	if wire.FieldPresent(flags, 5) {
		s, err := table.Read(r)
		if err != nil {
			return nil, err
		}
		e.CachingDisabledExplanation = &s
	}
	if wire.FieldPresent(flags, 6) {
		s, err := table.Read(r)
		if err != nil {
			return nil, err
		}
		e.OriginBuildInvocationID = &s
	}
	if wire.FieldPresent(flags, 7) {
		e.OriginBuildCacheKey, err = r.ByteArray()
		if err != nil {
			return nil, err
		}
	}
	if wire.FieldPresent(flags, 8) {
		v, err := r.PositiveVarintI64()
		if err != nil {
			return nil, err
		}
		e.OriginExecutionTime = &v
	}
	return e, nil
}
