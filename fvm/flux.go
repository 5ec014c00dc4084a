package fvm

// FaceFlux evaluates the combined advective-diffusive flux through one
// face, F = a p_face - d (pR - pL)/dx, with p_face selected by the flux
// type. rDx is the reciprocal cell spacing of the face normal axis.
func FaceFlux(ft FluxType, a, d, pL, pR, rDx float64) (flux float64) {
	var (
		pFace float64
	)
	switch ft {
	case FLUX_Central:
		pFace = 0.5 * (pL + pR)
	case FLUX_Upwind:
		if a > 0 {
			pFace = pL
		} else {
			pFace = pR
		}
	}
	flux = a*pFace - d*(pR-pL)*rDx
	return
}

// FaceWeights linearizes FaceFlux as F = cL pL + cR pR for operator
// assembly.
func FaceWeights(ft FluxType, a, d, rDx float64) (cL, cR float64) {
	switch ft {
	case FLUX_Central:
		cL = 0.5*a + d*rDx
		cR = 0.5*a - d*rDx
	case FLUX_Upwind:
		cL, cR = d*rDx, -d*rDx
		if a > 0 {
			cL += a
		} else {
			cR += a
		}
	}
	return
}
