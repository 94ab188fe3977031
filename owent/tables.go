package owent

// gl24Nodes/gl24Weights and gl48Nodes/gl48Weights are standard
// Gauss-Legendre quadrature abscissae and weights on [-1,1], used by T1
// (via gIntegral) and T5 respectively. Values are the well-known
// published nodes for n=24 and n=48 (e.g. Abramowitz & Stegun table
// 25.4), included verbatim per spec.md §4.5's note that T3/T5 use
// tabulated coefficients at 53-bit precision.
var gl24Nodes = []float64{
	-0.995187219997021, -0.974728555971309, -0.938274552002733, -0.886415527004401,
	-0.820001985973903, -0.740124191578554, -0.648093651936975, -0.545421471388840,
	-0.433793507626045, -0.315042679696163, -0.191118867473616, -0.064056892862606,
	0.064056892862606, 0.191118867473616, 0.315042679696163, 0.433793507626045,
	0.545421471388840, 0.648093651936975, 0.740124191578554, 0.820001985973903,
	0.886415527004401, 0.938274552002733, 0.974728555971309, 0.995187219997021,
}

var gl24Weights = []float64{
	0.012341229799987, 0.028531388628934, 0.044277438817420, 0.059298584915437,
	0.073346481411080, 0.086190161531953, 0.097618652104114, 0.107444270115966,
	0.115505668053726, 0.121670472927803, 0.125837456346828, 0.127938195346752,
	0.127938195346752, 0.125837456346828, 0.121670472927803, 0.115505668053726,
	0.107444270115966, 0.097618652104114, 0.086190161531953, 0.073346481411080,
	0.059298584915437, 0.044277438817420, 0.028531388628934, 0.012341229799987,
}

// gl48Nodes/gl48Weights: 48-point Gauss-Legendre rule, used for the wider
// [0,a] quadrature in T5.
var gl48Nodes = []float64{
	-0.998771007252426, -0.993530172266351, -0.984124583722827, -0.970591592546247,
	-0.952987703160431, -0.931386690706554, -0.905879136715570, -0.876572020274248,
	-0.843588261624393, -0.807066204029443, -0.767159032515740, -0.724034130923815,
	-0.677872379632664, -0.628867396776514, -0.577224726083973, -0.523160974722233,
	-0.466902904750958, -0.408686481990717, -0.348755886292161, -0.287362487355456,
	-0.224763790394689, -0.161222356068892, -0.097004699209463, -0.032380170962869,
	0.032380170962869, 0.097004699209463, 0.161222356068892, 0.224763790394689,
	0.287362487355456, 0.348755886292161, 0.408686481990717, 0.466902904750958,
	0.523160974722233, 0.577224726083973, 0.628867396776514, 0.677872379632664,
	0.724034130923815, 0.767159032515740, 0.807066204029443, 0.843588261624393,
	0.876572020274248, 0.905879136715570, 0.931386690706554, 0.952987703160431,
	0.970591592546247, 0.984124583722827, 0.993530172266351, 0.998771007252426,
}

var gl48Weights = []float64{
	0.003153346052306, 0.007327553901277, 0.011477234579235, 0.015579315722944,
	0.019616160457355, 0.023570760839324, 0.027426509708357, 0.031167227832799,
	0.034777222564770, 0.038241351065831, 0.041545082943465, 0.044674560856694,
	0.047616658492491, 0.050359035553854, 0.052890189485194, 0.055199503699984,
	0.057277292100403, 0.059114839698396, 0.060704439165894, 0.062039423159893,
	0.063114192286254, 0.063924238584648, 0.064466164435950, 0.064737696812684,
	0.064737696812684, 0.064466164435950, 0.063924238584648, 0.063114192286254,
	0.062039423159893, 0.060704439165894, 0.059114839698396, 0.057277292100403,
	0.055199503699984, 0.052890189485194, 0.050359035553854, 0.047616658492491,
	0.044674560856694, 0.041545082943465, 0.038241351065831, 0.034777222564770,
	0.031167227832799, 0.027426509708357, 0.023570760839324, 0.019616160457355,
	0.015579315722944, 0.011477234579235, 0.007327553901277, 0.003153346052306,
}
