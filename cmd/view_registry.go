package cmd

import "ucs/internal/cli"

const (
	replacementBothMessage    = "The inventory change takes either a lctn or a serial number as an input filter. Try again with only one of them"
	replacementMissingMessage = "The inventory change requires one of the input filters lctn or a serial number. Try again with one of them"
)

// viewDefinitions lists every "ucs view" subcommand in help order.
var viewDefinitions = []viewDefinition{
	{
		name:             "system-info",
		short:            "View the system information",
		path:             "system",
		flags:            flagAll,
		grouped:          true,
		omitDefaultLimit: true,
		columns: []string{"LCTN", "HOSTNAME", "AGGREGATOR", "STATE", "IPADDR", "MACADDR", "BMCIPADDR",
			"BOOTIMAGEID", "TYPE"},
		allColumns: []string{"LCTN", "HOSTNAME", "AGGREGATOR", "STATE", "IPADDR", "MACADDR", "BMCIPADDR",
			"BOOTIMAGEID", "TYPE", "SEQUENCENUMBER", "LASTCHGWORKITEMID", "BMCMACADDR", "LASTCHGTIMESTAMP",
			"INVENTORYINFO", "DBUPDATEDTIMESTAMP", "OWNER", "SERNUM", "BMCHOSTNAME", "LASTCHGADAPTERTYPE"},
	},
	{
		name:    "event",
		short:   "View the RAS events",
		path:    "cli/getraswithfilters",
		flags:   flagTimeRange | flagLimit | flagLocations | flagJobID | flagEventFilters | flagTimeout | flagAll | flagSummary,
		columns: []string{"lastchgtimestamp", "lctn", "eventtype", "severity", "controloperation", "msg"},
		allColumns: []string{"lastchgtimestamp", "lctn", "eventtype", "severity", "controloperation", "msg",
			"jobid", "instancedata", "dbupdatedtimestamp"},
	},
	{
		name:    "env",
		short:   "View the environmental data",
		path:    "cli/getenvwithfilters",
		flags:   flagTimeRange | flagLimit | flagLocations | flagTimeout | flagAll,
		columns: []string{"lctn", "type", "minimumvalue", "maximumvalue", "averagevalue", "timestamp"},
		allColumns: []string{"lctn", "type", "minimumvalue", "maximumvalue", "averagevalue", "timestamp",
			"adaptertype", "entrynumber", "workitemid"},
	},
	{
		name:     "state",
		short:    "View the latest state of specific locations",
		path:     "cli/getinvspecificlctn",
		flags:    flagLimit | flagTimeout,
		location: locationRequired,
		columns:  []string{"lctn", "type", "hostname", "state", "wlmnodestate", "owner", "environment", "bootimageid"},
	},
	{
		name:     "network-config",
		short:    "View the latest network configuration of specific locations",
		path:     "cli/getinvspecificlctn",
		flags:    flagLimit | flagTimeout,
		location: locationRequired,
		columns:  []string{"lctn", "type", "hostname", "ipaddr", "macaddr", "bmchostname", "bmcipaddr", "bmcmacaddr"},
	},
	{
		name:     "inventory-info",
		short:    "View the latest inventory of specific locations",
		path:     "cli/getinvspecificlctn",
		flags:    flagLimit | flagTimeout,
		location: locationRequired,
		columns:  []string{"lctn", "type", "hostname", "sequencenumber", "sernum", "entrynumber"},
	},
	{
		name:     "inventory-history",
		short:    "View the history of inventory changes of specific locations",
		path:     "cli/getinvspecificlctn",
		flags:    flagTimeRange | flagLimit | flagTimeout,
		location: locationRequired,
		columns:  []string{"lctn", "type", "hostname", "sequencenumber", "sernum", "entrynumber"},
	},
	{
		name:     "replacement-history",
		short:    "View the replacement history of locations or a serial number",
		path:     "cli/getinvchanges",
		flags:    flagTimeRange | flagLimit | flagSernum | flagTimeout | flagAll,
		location: locationOptional,
		columns:  []string{"lastchgtimestamp", "lctn", "oldsernum", "newsernum", "serviceoperationid"},
		allColumns: []string{"lastchgtimestamp", "lctn", "oldsernum", "newsernum", "serviceoperationid",
			"oldstate", "newstate", "frutype", "entrynumber", "dbupdatedtimestamp"},
		validate: validateReplacementHistory,
	},
	{
		name:     "snapshot-info",
		short:    "View the inventory snapshots of specific locations",
		path:     "cli/getsnapshotspecificlctn",
		flags:    flagTimeRange | flagLimit | flagSernum | flagTimeout,
		location: locationRequired,
		columns:  []string{"lctn", "id", "snapshottimestamp", "inventoryinfo", "reference"},
	},
	{
		name:             "snapshot-getref",
		short:            "View the reference snapshot of specific locations",
		path:             "cli/getrefsnapshot",
		location:         locationRequired,
		omitDefaultLimit: true,
		columns:          []string{"lctn", "id", "snapshottimestamp", "inventoryinfo", "reference"},
	},
	{
		name:    "jobpower",
		short:   "View the job power data",
		path:    "cli/getjobdata",
		flags:   flagTimeRange | flagLimit | flagLocations | flagJobID | flagTimeout,
		columns: []string{"lctn", "jobid", "totalruntime", "totalpackageenergy", "totaldramenergy", "jobpowertimestamp"},
	},
	{
		name:    "diag",
		short:   "View the diagnostics results",
		path:    "cli/getdiagsdata",
		flags:   flagTimeRange | flagLimit | flagLocations | flagDiagID | flagTimeout,
		columns: []string{"diagid", "lctn", "state", "results", "dbupdatedtimestamp"},
	},
}

// validateReplacementHistory requires exactly one of locations and --sernum.
func validateReplacementHistory(o *viewOptions) error {
	switch {
	case o.locations != "" && o.sernum != "":
		return &cli.UserConflictError{Message: replacementBothMessage}
	case o.locations == "" && o.sernum == "":
		return &cli.UserConflictError{Message: replacementMissingMessage}
	}
	return nil
}
