package coder

// Decode ingests a coded symbol: symbolData is SymbolSize() bytes of
// payload, symbolID is VectorLength() bytes of coefficients. Both buffers
// are reduced in place during the call (spec.md §4.3). No error is
// signalled if the symbol turns out to be linearly dependent on the rows
// already stored — rank is simply left unchanged (P8).
func (c *Coder) Decode(symbolData, symbolID []byte) {
	if len(symbolData) != c.SymbolSize() {
		panic("coder: decode symbol_data wrong length")
	}
	if len(symbolID) != c.VectorLength() {
		panic("coder: decode symbol_id wrong length")
	}
	c.decodeWithVector(symbolData, symbolID)
}

// decodeWithVector is the shared entry point for both the top-level Decode
// call and the recursive ingest inside swap-decode (spec.md §4.3.3 step 4).
func (c *Coder) decodeWithVector(symbolData, symbolID []byte) {
	pivot, found := c.forwardSubstituteToPivot(symbolData, symbolID)
	if !found {
		return
	}

	if !c.field.IsBinary() {
		c.normalize(symbolData, symbolID, pivot)
	}

	c.forwardSubstituteFromPivot(symbolData, symbolID, pivot)
	c.backwardSubstitute(symbolData, symbolID, pivot)
	c.storeCodedSymbol(symbolData, symbolID, pivot)

	c.rank++
	c.coded.Set(pivot)
	if pivot > c.maxPivot {
		c.maxPivot = pivot
	}
}

// forwardSubstituteToPivot is step 1 of spec.md §4.3.1: scan for the first
// unoccupied coefficient, eliminating occupied ones along the way.
func (c *Coder) forwardSubstituteToPivot(symbolData, symbolID []byte) (pivot int, found bool) {
	for i := 0; i < c.Symbols(); i++ {
		coeff := c.view.Coefficient(i, symbolID)
		if coeff == 0 {
			continue
		}
		if c.SymbolExists(i) {
			c.eliminate(symbolData, symbolID, i, coeff)
		} else {
			return i, true
		}
	}
	return 0, false
}

// normalize is step 2: scale symbolData/symbolID so the pivot coefficient
// becomes 1. Only called for non-binary fields.
func (c *Coder) normalize(symbolData, symbolID []byte, pivot int) {
	coeff := c.view.Coefficient(pivot, symbolID)
	if coeff == 0 {
		panic("coder: normalize called with zero pivot coefficient")
	}
	inv := c.field.Invert(coeff)
	c.field.Multiply(symbolID, inv)
	c.field.Multiply(symbolData, inv)
}

// forwardSubstituteFromPivot is step 3: eliminate any coefficients above
// the pivot column left over from rows that arrived with a higher pivot.
func (c *Coder) forwardSubstituteFromPivot(symbolData, symbolID []byte, pivot int) {
	for i := pivot + 1; i <= c.maxPivot; i++ {
		coeff := c.view.Coefficient(i, symbolID)
		if coeff == 0 {
			continue
		}
		if c.SymbolExists(i) {
			c.eliminate(symbolData, symbolID, i, coeff)
		}
	}
}

// backwardSubstitute is step 4: eliminate the new pivot column from every
// other occupied coded row. Uncoded rows are skipped — invariant (3) means
// they are already zero outside their own pivot.
func (c *Coder) backwardSubstitute(symbolData, symbolID []byte, pivot int) {
	for i := 0; i <= c.maxPivot; i++ {
		if c.uncoded.Get(i) || i == pivot || !c.coded.Get(i) {
			continue
		}
		vectorI := c.Vector(i)
		value := c.view.Coefficient(pivot, vectorI)
		if value == 0 {
			continue
		}
		symbolI := c.Symbol(i)
		if c.field.IsBinary() {
			c.field.Subtract(vectorI, symbolID)
			c.field.Subtract(symbolI, symbolData)
		} else {
			c.field.MultiplySubtract(vectorI, symbolID, value)
			c.field.MultiplySubtract(symbolI, symbolData, value)
		}
	}
}

// eliminate subtracts coeff*row(i) from (symbolData, symbolID), using the
// binary fast path when applicable.
func (c *Coder) eliminate(symbolData, symbolID []byte, i int, coeff uint32) {
	vectorI := c.Vector(i)
	symbolI := c.Symbol(i)
	if c.field.IsBinary() {
		c.field.Subtract(symbolID, vectorI)
		c.field.Subtract(symbolData, symbolI)
	} else {
		c.field.MultiplySubtract(symbolID, vectorI, coeff)
		c.field.MultiplySubtract(symbolData, symbolI, coeff)
	}
}

// storeCodedSymbol is step 5: copy the fully reduced row into storage at
// pivot. Rank/occupancy bookkeeping is updated by the caller.
func (c *Coder) storeCodedSymbol(symbolData, symbolID []byte, pivot int) {
	copy(c.Vector(pivot), symbolID)
	copy(c.Symbol(pivot), symbolData)
}

// storeUncodedSymbol writes a systematic symbol's payload and sets its
// coefficient vector to the standard basis vector e_pivot.
func (c *Coder) storeUncodedSymbol(symbolData []byte, pivot int) {
	copy(c.Symbol(pivot), symbolData)
	c.view.SetBasis(c.Vector(pivot), pivot)
}

// DecodeRaw ingests an uncoded (systematic) symbol known to be source
// symbol number symbolIndex (spec.md §4.3.2). If that symbol is already
// known uncoded, this is a no-op (P5, idempotence). If the pivot currently
// holds a coded row, a swap-decode is performed (§4.3.3).
func (c *Coder) DecodeRaw(symbolData []byte, symbolIndex int) {
	if symbolIndex < 0 || symbolIndex >= c.Symbols() {
		panic("coder: decode_raw symbol_index out of range")
	}
	if len(symbolData) != c.SymbolSize() {
		panic("coder: decode_raw symbol_data wrong length")
	}

	if c.uncoded.Get(symbolIndex) {
		return
	}

	if c.coded.Get(symbolIndex) {
		c.swapDecode(symbolData, symbolIndex)
		return
	}

	c.storeUncodedSymbol(symbolData, symbolIndex)
	vectorAtPivot := c.Vector(symbolIndex)
	c.backwardSubstitute(symbolData, vectorAtPivot, symbolIndex)

	c.rank++
	c.uncoded.Set(symbolIndex)
	if symbolIndex > c.maxPivot {
		c.maxPivot = symbolIndex
	}
}

// swapDecode handles the case where an uncoded symbol arrives for a pivot
// that a coded row currently occupies (spec.md §4.3.3). The displaced
// coded row is re-ingested through the coded-symbol path; because its
// pivot column has just been cleared, any pivot it finds is guaranteed to
// be greater than pivot. Rank therefore increases by 0 or 1 from this
// call: 0 if the displaced row turns out to be dependent on what remains,
// 1 if it finds a fresh pivot.
func (c *Coder) swapDecode(incoming []byte, pivot int) {
	c.coded.Clear(pivot)

	symbolI := c.Symbol(pivot)
	vectorI := c.Vector(pivot)

	if value := c.view.Coefficient(pivot, vectorI); value != 1 {
		panic("coder: swap-decode requires a normalized (unit) pivot coefficient")
	}
	c.view.SetCoefficient(pivot, vectorI, 0)
	c.field.Subtract(symbolI, incoming)

	c.decodeWithVector(symbolI, vectorI)

	for i := range vectorI {
		vectorI[i] = 0
	}

	c.storeUncodedSymbol(incoming, pivot)
	c.uncoded.Set(pivot)

	// No backward substitution is needed here: invariant (5) plus having
	// cleared column `pivot` from the displaced row before re-ingesting it
	// means no coded row can contain a non-zero entry at column pivot.
}
