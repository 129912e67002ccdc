package math

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

/**
 * @brief An axis-aligned bounding box in world space.
 * Min <= Max holds per axis for every box built through the constructors.
 * A box with Min == Max on some axis is degenerate but still valid.
 */
type BoundingBox struct {
	/** @brief The minimum corner. */
	Min Vec3
	/** @brief The maximum corner. */
	Max Vec3
}

/**
 * @brief A triangle in world space with its precomputed face normal.
 */
type Triangle struct {
	V0, V1, V2 Vec3
	/** @brief Unit face normal, counter-clockwise winding. */
	Normal Vec3
}
