package compute

type OrderType int

const (
	OT_INVALID OrderType = iota
	OT_DEFAULT
	OT_ASC
	OT_DESC
)

func (ot OrderType) String() string {
	switch ot {
	case OT_DEFAULT, OT_ASC:
		return "asc"
	case OT_DESC:
		return "desc"
	default:
		return "invalid"
	}
}
