package handler

// DI for all handlers.

import (
	ggdb "github.com/yumyai/exoclust/pkg/db"
)

type DBContext struct {
	Cluster_DB *ggdb.ClusterDB
}
