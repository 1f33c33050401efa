package game

// ClaimState tracks claim negotiation: accepts[claimer][acceptor] is true
// once acceptor has signed off on claimer's claim, and
// accepts[claimer][claimer] true means claimer is currently claiming.
// Ported from the claim-matrix design in the source this game is based
// on, which stores the same 4x4 boolean grid.
type ClaimState struct {
	accepts [4][4]bool
}

// NewClaimState returns an empty claim matrix.
func NewClaimState() ClaimState {
	return ClaimState{}
}

// IsClaiming reports whether seat currently has an active claim.
func (cs ClaimState) IsClaiming(seat Seat) bool {
	return cs.accepts[seat][seat]
}

// HasAccepted reports whether acceptor has accepted claimer's claim.
func (cs ClaimState) HasAccepted(claimer, acceptor Seat) bool {
	return cs.accepts[claimer][acceptor]
}

// WillSucceed reports whether accepting acceptor into claimer's claim
// would make every seat have accepted (including the claimer itself).
func (cs ClaimState) WillSucceed(claimer, acceptor Seat) bool {
	row := cs.accepts[claimer]
	row[acceptor] = true
	for _, accepted := range row {
		if !accepted {
			return false
		}
	}
	return true
}

// Succeeded reports whether every seat has already accepted claimer.
func (cs ClaimState) Succeeded(claimer Seat) bool {
	for _, accepted := range cs.accepts[claimer] {
		if !accepted {
			return false
		}
	}
	return true
}

// Claim marks seat as claiming (its own diagonal entry accepted).
func (cs ClaimState) Claim(seat Seat) ClaimState {
	cs.accepts[seat][seat] = true
	return cs
}

// Accept records that acceptor accepts claimer's claim, returning the
// updated state and whether the claim has now fully succeeded.
func (cs ClaimState) Accept(claimer, acceptor Seat) (ClaimState, bool) {
	cs.accepts[claimer][acceptor] = true
	return cs, cs.Succeeded(claimer)
}

// Reject cancels claimer's claim entirely: clearing any column of a
// row also clears the diagonal, per the invariant in spec.md §3.
func (cs ClaimState) Reject(claimer Seat) ClaimState {
	cs.accepts[claimer] = [4]bool{}
	return cs
}
