// Package iotask implements the operation enum, per-operation parameter
// structs, and the IOTask record of spec.md §4.2.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package iotask

// Operation enumerates every task a backend must be able to execute.
type Operation uint8

const (
	CreateFile Operation = iota
	OpenFile
	CloseFile
	DeleteFile

	CreatePath
	OpenPath
	ClosePath
	DeletePath
	ListPaths

	CreateDataset
	ExtendDataset
	OpenDataset
	DeleteDataset
	WriteDataset
	ReadDataset
	ListDatasets
	GetBufferView

	DeleteAtt
	WriteAtt
	ReadAtt
	ListAtts

	Advance
	AvailableChunks
)

var opNames = [...]string{
	"CREATE_FILE", "OPEN_FILE", "CLOSE_FILE", "DELETE_FILE",
	"CREATE_PATH", "OPEN_PATH", "CLOSE_PATH", "DELETE_PATH", "LIST_PATHS",
	"CREATE_DATASET", "EXTEND_DATASET", "OPEN_DATASET", "DELETE_DATASET",
	"WRITE_DATASET", "READ_DATASET", "LIST_DATASETS", "GET_BUFFER_VIEW",
	"DELETE_ATT", "WRITE_ATT", "READ_ATT", "LIST_ATTS",
	"ADVANCE", "AVAILABLE_CHUNKS",
}

func (op Operation) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "UNKNOWN_OP"
}
