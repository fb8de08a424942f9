package dynamics

// Code is a solver status code. Zero means success; each negative value
// identifies the first argument that failed validation. Size checks run in
// a fixed order before any output is written, so a non-zero return leaves
// the output arrays untouched.
type Code int

const (
	CodeOK           Code = 0
	CodeSizeQ        Code = -1
	CodeSizeQDot     Code = -2
	CodeSizeQDotDot  Code = -3
	CodeSizeTorques  Code = -4
	CodeSizeWrenches Code = -5
	CodeSizeJacobian Code = -6
	CodeSizeBeta     Code = -7
	CodeSizeLinkAcc  Code = -8
)

func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeSizeQ:
		return "size mismatch: q"
	case CodeSizeQDot:
		return "size mismatch: qdot"
	case CodeSizeQDotDot:
		return "size mismatch: qdotdot"
	case CodeSizeTorques:
		return "size mismatch: torques"
	case CodeSizeWrenches:
		return "size mismatch: external wrenches"
	case CodeSizeJacobian:
		return "size mismatch: constraint jacobian"
	case CodeSizeBeta:
		return "size mismatch: constraint targets"
	case CodeSizeLinkAcc:
		return "size mismatch: link accelerations"
	}
	return "unknown code"
}
