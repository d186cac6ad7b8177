package consts

// MATPOWER bus table columns (0-based).
const (
	BusI    = 0  // bus number
	BusType = 1  // 1 PQ, 2 PV, 3 ref, 4 isolated
	BusPd   = 2  // real power demand (MW)
	BusQd   = 3  // reactive power demand (MVAr)
	BusGs   = 4  // shunt conductance (MW at V=1.0 pu)
	BusBs   = 5  // shunt susceptance (MVAr at V=1.0 pu)
	BusArea = 6  // area number
	BusVm   = 7  // voltage magnitude (pu)
	BusVa   = 8  // voltage angle (degrees)
	BusKV   = 9  // base voltage (kV)
	BusZone = 10 // loss zone
	BusVmax = 11 // maximum voltage magnitude (pu)
	BusVmin = 12 // minimum voltage magnitude (pu)
)

// MATPOWER gen table columns (0-based).
const (
	GenBus    = 0 // bus number
	GenPg     = 1 // real power output (MW)
	GenQg     = 2 // reactive power output (MVAr)
	GenQmax   = 3 // maximum reactive output (MVAr)
	GenQmin   = 4 // minimum reactive output (MVAr)
	GenVg     = 5 // voltage magnitude setpoint (pu)
	GenMBase  = 6 // machine MVA base
	GenStatus = 7 // >0 in service
	GenPmax   = 8 // maximum real output (MW)
	GenPmin   = 9 // minimum real output (MW)
)

// MATPOWER branch table columns (0-based).
const (
	BrF      = 0  // from bus number
	BrT      = 1  // to bus number
	BrR      = 2  // series resistance (pu)
	BrX      = 3  // series reactance (pu)
	BrB      = 4  // total line charging susceptance (pu)
	BrRateA  = 5  // MVA rating A
	BrRateB  = 6  // MVA rating B
	BrRateC  = 7  // MVA rating C
	BrTap    = 8  // off-nominal tap ratio, 0 means none
	BrShift  = 9  // phase shift angle (degrees)
	BrStatus = 10 // >0 in service
	BrAngmin = 11 // minimum angle difference (degrees)
	BrAngmax = 12 // maximum angle difference (degrees)
	BrPf     = 13 // real power injected at from end (MW)
	BrQf     = 14 // reactive power injected at from end (MVAr)
	BrPt     = 15 // real power injected at to end (MW)
	BrQt     = 16 // reactive power injected at to end (MVAr)
)

// Bus type codes used in the numeric bus table.
const (
	TypePQ       = 1
	TypePV       = 2
	TypeRef      = 3
	TypeIsolated = 4
)

// Minimum table widths required by the AC solving path. Narrower tables are
// zero-padded on the right, never truncated. A DC bus row cannot carry Pg: the
// bus table has no generation column, so row-form buses always get Pg=0 and
// generation must come from the gen table.
const (
	MinBusCols    = 13
	MinGenCols    = 21
	MinBranchCols = 13
)
