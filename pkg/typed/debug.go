package typed

// Recoverable conditions go to the Runtime's debug channel instead of
// being surfaced as errors, so a caller materialising a large object
// graph isn't forced to thread handling for events that are normal in
// practice: a cycle, a dangling reference, an unrecognised enum option
// from a newer archive than this build's generated code.

func (rt *Runtime) logCycle(structIndex, instanceIndex int32) {
	rt.logger.Debug("cycle break", "struct", structIndex, "instance", instanceIndex)
}

func (rt *Runtime) logUnknownRecord(guid [16]byte) {
	rt.logger.Debug("unknown record", "guid", guid)
}

func (rt *Runtime) logEnumMiss(stringID int32, detail any) {
	rt.logger.Debug("enum option miss", "stringId", stringID, "detail", detail)
}
