package events

import "github.com/arloliu/buildscan-decoder/wire"

// BuildAgentEvent identifies the machine that ran the build. Grounded on
// build_agent.rs.
type BuildAgentEvent struct {
	Username       *string
	LocalHostname  *string
	PublicHostname *string
	IPAddresses    []string
}

func (e BuildAgentEvent) WireID() uint16 { return WireBuildAgent }

func decodeBuildAgent(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	table := wire.NewStringTable()
	flags, err := r.FlagsByte()
	if err != nil {
		return nil, err
	}

	var e BuildAgentEvent
	if wire.BytePresent(flags, 0) {
		s, err := table.Read(r)
		if err != nil {
			return nil, err
		}
		e.Username = &s
	}
	if wire.BytePresent(flags, 1) {
		s, err := table.Read(r)
		if err != nil {
			return nil, err
		}
		e.LocalHostname = &s
	}
	if wire.BytePresent(flags, 2) {
		s, err := table.Read(r)
		if err != nil {
			return nil, err
		}
		e.PublicHostname = &s
	}
	if wire.BytePresent(flags, 3) {
		e.IPAddresses, err = table.ReadList(r)
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

// OsEvent describes the build agent's operating system. Grounded on os.rs.
type OsEvent struct {
	Family  *string
	Name    *string
	Version *string
	Arch    *string
}

func (e OsEvent) WireID() uint16 { return WireOs }

func decodeOs(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	table := wire.NewStringTable()
	flags, err := r.FlagsByte()
	if err != nil {
		return nil, err
	}

	var e OsEvent
	slots := []**string{&e.Family, &e.Name, &e.Version, &e.Arch}
	for bit, dst := range slots {
		if wire.BytePresent(flags, uint(bit)) {
			s, err := table.Read(r)
			if err != nil {
				return nil, err
			}
			*dst = &s
		}
	}
	return e, nil
}

// LocalityEvent describes the build agent's locale and time zone. Grounded
// on locality.rs.
type LocalityEvent struct {
	LocaleLanguage       *string
	LocaleCountry        *string
	LocaleVariant        *string
	TimeZoneID           *string
	TimeZoneOffsetMillis *int32
}

func (e LocalityEvent) WireID() uint16 { return WireLocality }

func decodeLocality(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	table := wire.NewStringTable()
	flags, err := r.FlagsByte()
	if err != nil {
		return nil, err
	}

	var e LocalityEvent
	if wire.BytePresent(flags, 0) {
		s, err := table.Read(r)
		if err != nil {
			return nil, err
		}
		e.LocaleLanguage = &s
	}
	if wire.BytePresent(flags, 1) {
		s, err := table.Read(r)
		if err != nil {
			return nil, err
		}
		e.LocaleCountry = &s
	}
	if wire.BytePresent(flags, 2) {
		s, err := table.Read(r)
		if err != nil {
			return nil, err
		}
		e.LocaleVariant = &s
	}
	if wire.BytePresent(flags, 3) {
		s, err := table.Read(r)
		if err != nil {
			return nil, err
		}
		e.TimeZoneID = &s
	}
	if wire.BytePresent(flags, 4) {
		v, err := r.PositiveVarintI32()
		if err != nil {
			return nil, err
		}
		e.TimeZoneOffsetMillis = &v
	}
	return e, nil
}

// JvmEvent describes the JVM that ran the build. Its flags word is the
// fixed big-endian form (9 conditional fields). Grounded on jvm.rs.
type JvmEvent struct {
	Version        *string
	Vendor         *string
	RuntimeName    *string
	RuntimeVersion *string
	ClassVersion   *string
	VMInfo         *string
	VMName         *string
	VMVersion      *string
	VMVendor       *string
}

func (e JvmEvent) WireID() uint16 { return WireJvm }

func decodeJvm(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	table := wire.NewStringTable()
	flags, err := r.FlagsU16BE()
	if err != nil {
		return nil, err
	}

	var e JvmEvent
	slots := []**string{&e.Version, &e.Vendor, &e.RuntimeName, &e.RuntimeVersion, &e.ClassVersion, &e.VMInfo, &e.VMName, &e.VMVersion, &e.VMVendor}
	for bit, dst := range slots {
		if wire.FieldPresent(flags, uint(bit)) {
			s, err := table.Read(r)
			if err != nil {
				return nil, err
			}
			*dst = &s
		}
	}
	return e, nil
}

// JvmArgsEvent lists the effective JVM arguments. No flags word: the list
// is unconditional. Grounded on jvm_args.rs.
type JvmArgsEvent struct {
	Effective []string
}

func (e JvmArgsEvent) WireID() uint16 { return WireJvmArgs }

func decodeJvmArgs(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	table := wire.NewStringTable()
	effective, err := table.ReadList(r)
	if err != nil {
		return nil, err
	}
	return JvmArgsEvent{Effective: effective}, nil
}

// HardwareEvent reports the processor count. No flags word: the field is
// unconditional. Grounded on hardware.rs.
type HardwareEvent struct {
	NumProcessors int32
}

func (e HardwareEvent) WireID() uint16 { return WireHardware }

func decodeHardware(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	n, err := r.PositiveVarintI32()
	if err != nil {
		return nil, err
	}
	return HardwareEvent{NumProcessors: n}, nil
}

// EncodingEvent reports the default charset. No flags word. Grounded on
// encoding.rs.
type EncodingEvent struct {
	DefaultCharset string
}

func (e EncodingEvent) WireID() uint16 { return WireEncoding }

func decodeEncoding(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	table := wire.NewStringTable()
	charset, err := table.Read(r)
	if err != nil {
		return nil, err
	}
	return EncodingEvent{DefaultCharset: charset}, nil
}

// ScopeIdsEvent carries the build invocation, workspace and user ids used
// to correlate this build scan with others. Grounded on scope_ids.rs.
type ScopeIdsEvent struct {
	BuildInvocationID *string
	WorkspaceID       *string
	UserID            *string
}

func (e ScopeIdsEvent) WireID() uint16 { return WireScopeIds }

func decodeScopeIds(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	table := wire.NewStringTable()
	flags, err := r.FlagsByte()
	if err != nil {
		return nil, err
	}

	var e ScopeIdsEvent
	if wire.BytePresent(flags, 0) {
		s, err := table.Read(r)
		if err != nil {
			return nil, err
		}
		e.BuildInvocationID = &s
	}
	if wire.BytePresent(flags, 1) {
		s, err := table.Read(r)
		if err != nil {
			return nil, err
		}
		e.WorkspaceID = &s
	}
	if wire.BytePresent(flags, 2) {
		s, err := table.Read(r)
		if err != nil {
			return nil, err
		}
		e.UserID = &s
	}
	return e, nil
}

// FileRefRootEntry is one root-type-to-path mapping.
type FileRefRootEntry struct {
	RootType uint64
	Path     string
}

// FileRefRootsEvent is the Map<RootType, String> of declared file-ref
// roots, in the order they were written. No flags word. Grounded on
// file_ref_roots.rs.
type FileRefRootsEvent struct {
	Entries []FileRefRootEntry
}

func (e FileRefRootsEvent) WireID() uint16 { return WireFileRefRoots }

func decodeFileRefRoots(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	table := wire.NewStringTable()
	count, err := r.Uvarint()
	if err != nil {
		return nil, err
	}

	entries := make([]FileRefRootEntry, 0, count)
	for i := uint64(0); i < count; i++ {
		rootType, err := r.EnumOrdinal()
		if err != nil {
			return nil, err
		}
		path, err := table.Read(r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, FileRefRootEntry{RootType: rootType, Path: path})
	}
	return FileRefRootsEvent{Entries: entries}, nil
}

// JavaToolchainUsageEvent records one task's use of a Java toolchain.
// Grounded on java_toolchain_usage.rs.
type JavaToolchainUsageEvent struct {
	TaskID      int64
	ToolchainID int64
	ToolName    string
}

func (e JavaToolchainUsageEvent) WireID() uint16 { return WireJavaToolchainUsage }

func decodeJavaToolchainUsage(body []byte) (DecodedEvent, error) {
	r := wire.NewReader(body)
	table := wire.NewStringTable()
	flags, err := r.FlagsByte()
	if err != nil {
		return nil, err
	}

	var e JavaToolchainUsageEvent
	if wire.BytePresent(flags, 0) {
		e.TaskID, err = r.ZigzagI64()
		if err != nil {
			return nil, err
		}
	}
	if wire.BytePresent(flags, 1) {
		e.ToolchainID, err = r.ZigzagI64()
		if err != nil {
			return nil, err
		}
	}
	if wire.BytePresent(flags, 2) {
		e.ToolName, err = table.Read(r)
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}
