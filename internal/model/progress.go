package model

// ScanProgress is a snapshot of a running or finished scan
type ScanProgress struct {
	VolumesDone  int
	VolumesTotal int
	DirsVisited  int64
	Matches      int64
	CurrentDir   string
}

// Fraction returns the completed share of volumes in [0, 1]
func (p ScanProgress) Fraction() float64 {
	if p.VolumesTotal == 0 {
		return 0
	}
	f := float64(p.VolumesDone) / float64(p.VolumesTotal)
	if f > 1 {
		return 1
	}
	return f
}
