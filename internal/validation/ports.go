package validation

// TypeHandle identifies a resolved component type. Its concrete form belongs
// to the SceneQuery implementation.
type TypeHandle interface {
	// FullName is the resolved, fully qualified type name used in reports.
	FullName() string
}

// SceneQuery answers existence questions about the live scene.
type SceneQuery interface {
	ObjectExists(name string) bool
	// ResolveType returns nil when name does not resolve to a known type.
	ResolveType(name string) TypeHandle
	HasComponent(objectName string, t TypeHandle) bool
}

// FileHandle identifies a located file. Path is reported to the learner.
type FileHandle struct {
	Path string
}

// FileQuery locates and reads course project files by logical name.
type FileQuery interface {
	// FindByFilename prefers an exact filename match and falls back to a
	// project-wide search.
	FindByFilename(name string) (FileHandle, bool)
	ReadText(h FileHandle) (string, error)
}
