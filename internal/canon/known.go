package canon

// Paths are registered at the place of declaration. Re-exports like
// std::mem::zeroed are what resolvers follow back to these.
var predefined = []struct {
	path string
	tag  Tag
}{
	// Zero-fill.
	{path: "core::mem::zeroed", tag: TagZeroFill},
	{path: "core::intrinsics::init", tag: TagZeroFill},

	// Uninitialized memory.
	{path: "core::mem::uninitialized", tag: TagUninit},
	{path: "core::intrinsics::uninit", tag: TagUninit},

	// Reinterpretation and null pointers.
	{path: "core::intrinsics::transmute", tag: TagTransmute},
	{path: "core::ptr::null", tag: TagNullPtr},
	{path: "core::ptr::null_mut", tag: TagNullPtr},
}
