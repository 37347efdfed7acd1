package events

import "github.com/arloliu/buildscan-decoder/wire"

// TaskInputsImplementationEvent records the task's action class and its
// classloader hashes. Grounded on task_inputs_implementation.rs.
type TaskInputsImplementationEvent struct {
	ID                        *int64
	ClassLoaderHash           []byte
	ActionClassLoaderHashes   [][]byte
	ActionClassNames          []string
}

func (e TaskInputsImplementationEvent) WireID() uint16 { return WireTaskInputsImplementation }

func decodeTaskInputsImplementation(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	table := wire.NewStringTable()
	flags, err := r.FlagsByte()
	if err != nil {
		return nil, err
	}

	var e TaskInputsImplementationEvent
	if wire.BytePresent(flags, 0) {
		id, err := r.FixedI64LE()
		if err != nil {
			return nil, err
		}
		e.ID = &id
	}
	if wire.BytePresent(flags, 1) {
		e.ClassLoaderHash, err = r.ByteArray()
		if err != nil {
			return nil, err
		}
	}
	if wire.BytePresent(flags, 2) {
		e.ActionClassLoaderHashes, err = r.ListOfByteArrays()
		if err != nil {
			return nil, err
		}
	}
	if wire.BytePresent(flags, 3) {
		e.ActionClassNames, err = table.ReadList(r)
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

// TaskInputsPropertyNamesEvent lists the declared input/output property
// names for a task. Grounded on task_inputs_property_names.rs.
type TaskInputsPropertyNamesEvent struct {
	ID           *int64
	ValueInputs  []string
	FileInputs   []string
	Outputs      []string
}

func (e TaskInputsPropertyNamesEvent) WireID() uint16 { return WireTaskInputsPropertyNames }

func decodeTaskInputsPropertyNames(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	table := wire.NewStringTable()
	flags, err := r.FlagsByte()
	if err != nil {
		return nil, err
	}

	var e TaskInputsPropertyNamesEvent
	if wire.BytePresent(flags, 0) {
		id, err := r.FixedI64LE()
		if err != nil {
			return nil, err
		}
		e.ID = &id
	}
	if wire.BytePresent(flags, 1) {
		e.ValueInputs, err = table.ReadList(r)
		if err != nil {
			return nil, err
		}
	}
	if wire.BytePresent(flags, 2) {
		e.FileInputs, err = table.ReadList(r)
		if err != nil {
			return nil, err
		}
	}
	if wire.BytePresent(flags, 3) {
		e.Outputs, err = table.ReadList(r)
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

// TaskInputsValuePropertiesEvent lists the content hashes of a task's
// value-typed input properties. Grounded on task_inputs_value_properties.rs.
type TaskInputsValuePropertiesEvent struct {
	ID     *int64
	Hashes [][]byte
}

func (e TaskInputsValuePropertiesEvent) WireID() uint16 { return WireTaskInputsValueProperties }

func decodeTaskInputsValueProperties(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	flags, err := r.FlagsByte()
	if err != nil {
		return nil, err
	}

	var e TaskInputsValuePropertiesEvent
	if wire.BytePresent(flags, 0) {
		id, err := r.FixedI64LE()
		if err != nil {
			return nil, err
		}
		e.ID = &id
	}
	if wire.BytePresent(flags, 1) {
		e.Hashes, err = r.ListOfByteArrays()
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

// TaskInputsFilePropertyEvent describes one file-typed input property.
// Grounded on task_inputs_file_property.rs.
type TaskInputsFilePropertyEvent struct {
	ID         *int64
	Attributes []string
	Hash       []byte
	Roots      []int64
}

func (e TaskInputsFilePropertyEvent) WireID() uint16 { return WireTaskInputsFileProperty }

func decodeTaskInputsFileProperty(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	table := wire.NewStringTable()
	flags, err := r.FlagsByte()
	if err != nil {
		return nil, err
	}

	var e TaskInputsFilePropertyEvent
	if wire.BytePresent(flags, 0) {
		id, err := r.FixedI64LE()
		if err != nil {
			return nil, err
		}
		e.ID = &id
	}
	if wire.BytePresent(flags, 1) {
		e.Attributes, err = table.ReadList(r)
		if err != nil {
			return nil, err
		}
	}
	if wire.BytePresent(flags, 2) {
		e.Hash, err = r.ByteArray()
		if err != nil {
			return nil, err
		}
	}
	if wire.BytePresent(flags, 3) {
		e.Roots, err = r.ListOfI64()
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

// FileRef identifies a file relative to one of the declared file-ref roots
// (§ Report.Environment.FileRefRoots).
type FileRef struct {
	Root *uint64
	Path *string
}

// FilePropertyRootChild is one child entry under a file-property root's
// snapshot tree.
type FilePropertyRootChild struct {
	Name   *string
	Hash   []byte
	Parent *int32
}

// TaskInputsFilePropertyRootEvent is the root of one file-typed input's
// snapshot tree. Grounded on task_inputs_file_property_root.rs.
type TaskInputsFilePropertyRootEvent struct {
	ID       *int64
	File     FileRef
	RootHash []byte
	Children []FilePropertyRootChild
}

func (e TaskInputsFilePropertyRootEvent) WireID() uint16 { return WireTaskInputsFilePropertyRoot }

func decodeFileRef(r *wire.Reader, table *wire.StringTable) (FileRef, error) {
	flags, err := r.FlagsByte()
	if err != nil {
		return FileRef{}, err
	}
	var f FileRef
	if wire.BytePresent(flags, 0) {
		v, err := r.EnumOrdinal()
		if err != nil {
			return FileRef{}, err
		}
		f.Root = &v
	}
	if wire.BytePresent(flags, 1) {
		s, err := table.Read(r)
		if err != nil {
			return FileRef{}, err
		}
		f.Path = &s
	}
	return f, nil
}

func decodeFilePropertyRootChild(r *wire.Reader, table *wire.StringTable) (FilePropertyRootChild, error) {
	flags, err := r.FlagsByte()
	if err != nil {
		return FilePropertyRootChild{}, err
	}
	var c FilePropertyRootChild
	if wire.BytePresent(flags, 0) {
		s, err := table.Read(r)
		if err != nil {
			return FilePropertyRootChild{}, err
		}
		c.Name = &s
	}
	if wire.BytePresent(flags, 1) {
		c.Hash, err = r.ByteArray()
		if err != nil {
			return FilePropertyRootChild{}, err
		}
	}
	if wire.BytePresent(flags, 2) {
		v, err := r.ZigzagI32()
		if err != nil {
			return FilePropertyRootChild{}, err
		}
		c.Parent = &v
	}
	return c, nil
}

func decodeTaskInputsFilePropertyRoot(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	table := wire.NewStringTable()
	flags, err := r.FlagsByte()
	if err != nil {
		return nil, err
	}

	var e TaskInputsFilePropertyRootEvent
	if wire.BytePresent(flags, 0) {
		id, err := r.FixedI64LE()
		if err != nil {
			return nil, err
		}
		e.ID = &id
	}
	e.File, err = decodeFileRef(r, table)
	if err != nil {
		return nil, err
	}
	if wire.BytePresent(flags, 1) {
		e.RootHash, err = r.ByteArray()
		if err != nil {
			return nil, err
		}
	}
	if wire.BytePresent(flags, 2) {
		count, err := r.Uvarint()
		if err != nil {
			return nil, err
		}
		e.Children = make([]FilePropertyRootChild, 0, count)
		for i := uint64(0); i < count; i++ {
			child, err := decodeFilePropertyRootChild(r, table)
			if err != nil {
				return nil, err
			}
			e.Children = append(e.Children, child)
		}
	}
	return e, nil
}

// TaskInputsSnapshottingStartedEvent marks the start of input snapshotting
// for a task. It has no flags word: the task id is always present.
// Grounded on task_inputs_snapshotting_started.rs.
type TaskInputsSnapshottingStartedEvent struct {
	Task int64
}

func (e TaskInputsSnapshottingStartedEvent) WireID() uint16 { return WireTaskInputsSnapshotStarted }

func decodeTaskInputsSnapshottingStarted(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	task, err := r.FixedI64LE()
	if err != nil {
		return nil, err
	}
	return TaskInputsSnapshottingStartedEvent{Task: task}, nil
}

// TaskInputsSnapshottingResult is the successful outcome of snapshotting:
// the inputs hash plus the fixed 64-bit ids of the property-describing
// events it refers to.
type TaskInputsSnapshottingResult struct {
	Hash            []byte
	Implementation  *int64
	PropertyNames   *int64
	ValueInputs     *int64
	FileInputs      []int64
}

// TaskInputsSnapshottingFinishedEvent marks the end of input snapshotting,
// either with a successful Result or a FailureID. Grounded on
// task_inputs_snapshotting_finished.rs.
type TaskInputsSnapshottingFinishedEvent struct {
	Task      *int64
	Result    *TaskInputsSnapshottingResult
	FailureID *int64
}

func (e TaskInputsSnapshottingFinishedEvent) WireID() uint16 { return WireTaskInputsSnapshotFinished }

func decodeTaskInputsSnapshottingResult(r *wire.Reader) (TaskInputsSnapshottingResult, error) {
	flags, err := r.FlagsByte()
	if err != nil {
		return TaskInputsSnapshottingResult{}, err
	}
	var res TaskInputsSnapshottingResult
	if wire.BytePresent(flags, 0) {
		res.Hash, err = r.ByteArray()
		if err != nil {
			return TaskInputsSnapshottingResult{}, err
		}
	}
	if wire.BytePresent(flags, 1) {
		v, err := r.FixedI64LE()
		if err != nil {
			return TaskInputsSnapshottingResult{}, err
		}
		res.Implementation = &v
	}
	if wire.BytePresent(flags, 2) {
		v, err := r.FixedI64LE()
		if err != nil {
			return TaskInputsSnapshottingResult{}, err
		}
		res.PropertyNames = &v
	}
	if wire.BytePresent(flags, 3) {
		v, err := r.FixedI64LE()
		if err != nil {
			return TaskInputsSnapshottingResult{}, err
		}
		res.ValueInputs = &v
	}
	if wire.BytePresent(flags, 4) {
		res.FileInputs, err = r.ListOfI64()
		if err != nil {
			return TaskInputsSnapshottingResult{}, err
		}
	}
	return res, nil
}

func decodeTaskInputsSnapshottingFinished(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	flags, err := r.FlagsByte()
	if err != nil {
		return nil, err
	}

	var e TaskInputsSnapshottingFinishedEvent
	if wire.BytePresent(flags, 0) {
		v, err := r.FixedI64LE()
		if err != nil {
			return nil, err
		}
		e.Task = &v
	}
	if wire.BytePresent(flags, 1) {
		res, err := decodeTaskInputsSnapshottingResult(r)
		if err != nil {
			return nil, err
		}
		e.Result = &res
	}
	if wire.BytePresent(flags, 2) {
		v, err := r.FixedI64LE()
		if err != nil {
			return nil, err
		}
		e.FailureID = &v
	}
	return e, nil
}
