package common

// Project file formats convertible by this program. Extensions are the sole
// format discriminator.
type ProjectFmt int

const (
	FmtMdnov ProjectFmt = iota
	FmtNovx
)

const (
	MdnovExt = ".mdnov"
	NovxExt  = ".novx"
)

// Other returns the conversion counterpart of the format.
func (f ProjectFmt) Other() ProjectFmt {
	if f == FmtMdnov {
		return FmtNovx
	}
	return FmtMdnov
}

func (f ProjectFmt) Ext() string {
	switch f {
	case FmtMdnov:
		return MdnovExt
	case FmtNovx:
		return NovxExt
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

func (f ProjectFmt) String() string {
	switch f {
	case FmtMdnov:
		return "mdnov"
	case FmtNovx:
		return "novx"
	default:
		return "unknown"
	}
}
