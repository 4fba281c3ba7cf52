// Package wood turns a nested JSON tree description into a laid-out-ready
// tree instance (a "wood").
//
// A wood is produced by three passes that always run in this order:
//
//  1. [Build] parses the document into [node.Store]-owned nodes, linking
//     parents and children in document key order.
//  2. [Wood.AssignPathsAndDepths] walks the tree breadth-first, giving every
//     node a dotted path and a depth and grouping nodes by depth.
//  3. [Wood.ComputeScales] derives the per-depth radius multipliers that keep
//     siblings from overlapping when placed on a circle around their parent.
//
// [Collection] runs all three for each document it is given and keeps the
// resulting woods side by side on one shared store.
//
// # Input Format
//
//	{
//	  "name": "sample-application",
//	  "display_name": "Sample",
//	  "children": {
//	    "service1": {"children": {"service5": {}}},
//	    "service2": {}
//	  }
//	}
//
// Missing display names fall back to [node.DefaultDisplayName], a missing
// root name to [node.DefaultAppName], and an absent or empty "children"
// object means no children. Only a document that is not a JSON object is
// rejected.
//
// # Scales
//
// For a depth whose widest node has n > 1 children the raw scale is
//
//	1/sin(π/n) + 1
//
// and scales compound from the deepest level upward, so each depth's radius
// leaves room for the full spread of everything below it.
package wood
