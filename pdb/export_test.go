package pdb

const (
	Old_fmt   = old_fmt
	Mmcif_fmt = mmcif_fmt
)

var OldOrMmcif = oldOrMmcif
