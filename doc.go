// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package reckon is the overall repository for the software model of the ReckOn
spiking recurrent neural network accelerator, with on-chip e-prop learning
in fixed-point arithmetic and stochastic rounding, implemented in the Go
language (golang).

This top-level of the repository has no functional code -- everything is organized
into the following sub-repositories:

* fixpt: fixed-point primitives -- saturation, arithmetic shifts with
nearest or stochastic rounding, and saturation counting.

* lfsr: maximal-length Galois linear feedback shift registers, the
pseudo-random sources used for rounding, weight initialization and noise.

* reckon: the core itself -- the configuration record and its testbench
header form, leaky integrate-and-fire recurrent neurons, leaky output
neurons, eligibility traces, learning signals and weight updates, and the
tick controller that runs samples, epochs and training, with logs, datasets
and weight files.

* cuenv: the delayed-supervision cue accumulation (navigation) task as an
emergent env.Env, producing samples for the core.

* examples: these actually compile into runnable programs.  examples/nav
trains the core on the navigation task over multiple seeds in parallel.
*/
package reckon
