// Package tenantscore exports tenant creditworthiness models into a portable
// JSON document and reproduces their predictions in Go.
//
// Three model kinds share one document format:
//
//	linear  {"type":"linear","intercept":...,"coefficients":[...]}
//	forest  {"type":"forest","n_estimators":N,"trees":[...]}
//	gbm     {"type":"gbm","init_score":...,"learning_rate":...,"trees":[...]}
//
// A tree node is either {"feature_index","threshold","left","right"} or
// {"value"}. Feature vectors always use the slot order streak, delay,
// utility, linkedin.
//
// # Packages
//
//   - core/tree: immutable binary decision trees and their JSON form
//   - core/model: the model document, its validation and persistence
//   - sklearn/export: conversion of fitted trainer state into documents
//   - scoring: evaluation of documents, batch scoring and the credit scale
//   - metrics: parity between document scores and trainer predictions
//   - sensitivity: one-feature sweeps and charts
//   - pkg/errors, pkg/log, pkg/config: errors, logging and configuration
//
// # Quick Start
//
//	doc, err := model.Load("gbm.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	raw, err := scoring.Score(doc, model.NewFeatureVector(12, 3, 0.85, 1))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(scoring.CreditScore(raw), scoring.Band(scoring.CreditScore(raw)))
//
// Leaf values mean different things per kind: forest leaves are absolute
// predictions that are averaged, gbm leaves are corrections scaled by the
// learning rate and added to init_score.
package tenantscore
