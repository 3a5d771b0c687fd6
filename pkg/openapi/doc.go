// Package openapi builds field groups from OpenAPI 3 component schemas. The
// kin-openapi types stay inside this package; callers only see Document and
// model.Group.
//
// A schema declares a group with vendor extensions:
//
//	Contact:
//	  type: object
//	  properties:
//	    vip:
//	      type: boolean
//	      x-fieldgroup-control: vip
//	    last_met:
//	      type: string
//	      format: date
//	      x-fieldgroup: vip
//	      x-fieldgroup-order: 1
package openapi
