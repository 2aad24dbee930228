// Copyright 2026 The SampleFlow Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

// Package consumers implements online estimators over a sample stream.
//
// Each estimator consumes one sample at a time and incrementally
// maintains a derived statistic (mean, histogram, autocovariance, ...)
// in O(1) or O(window) time per sample, without retaining the sample
// history. All estimators are safe for concurrent use: a single mutex
// per instance guards Consume and Get, and Get returns an independent
// snapshot that later updates never modify.
//
// Estimators never lock each other; connecting several of them to the
// same producer cannot deadlock.
package consumers
