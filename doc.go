// Copyright 2026 The SampleFlow Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

// Package sampleflow provides the plumbing for streaming statistical
// analysis of sample sequences, such as the output of a Markov chain
// Monte Carlo sampler.
//
// A Producer emits samples one at a time to every connected Consumer.
// Consumers (see the consumers subpackage) incrementally maintain
// derived statistics without retaining the sample history; filters (see
// the filters subpackage) sit between producers and consumers and
// transform or thin the stream.
//
// Samples are either scalars or fixed-dimension vectors. Estimators are
// generic over the Sample capability interface so the same update rules
// apply to both.
package sampleflow
