package main

import (
	"github.com/google/uuid"

	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/config"
	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/model"
	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/object"
	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/registry"
)

// Fixed bootstrap oids. constantOid is true for all of them: the tree shape
// is fully determined by configuration, so the same object always gets the
// same oid across restarts.
const (
	rootOid          model.Oid = 1
	deviceManagerOid model.Oid = 2
	classManagerOid  model.Oid = 3
)

// device bundles the bootstrap-built object tree with the members the serve
// loop needs direct handles to, plus the NMOS resource ids shared between
// the tree's touchpoints and the discovery documents.
type device struct {
	root          *object.Block
	deviceManager *object.DeviceManager
	classManager  *object.ClassManager

	nodeID   string
	deviceID string
}

// buildTree constructs the root block with its DeviceManager and
// ClassManager children. Missing NMOS resource ids are minted fresh; the
// touchpoint on the root block links the control tree to the IS-04 device
// resource it belongs to.
func buildTree(cfg config.Config, reg *registry.Registry, emit object.EventEmitter) *device {
	nodeID := cfg.Device.NodeId
	if nodeID == "" {
		nodeID = uuid.NewString()
	}
	deviceID := cfg.Device.DeviceId
	if deviceID == "" {
		deviceID = uuid.NewString()
	}

	rootCore := object.NewObjectCore(model.ClassId{1, 2}, rootOid, true, nil, "root",
		[]model.Touchpoint{{ResourceType: "device", Id: deviceID}}, nil, emit)
	root := object.NewBlock(rootCore, true)

	owner := rootOid
	dmCore := object.NewObjectCore(model.ClassId{1, 3, 1}, deviceManagerOid, true, &owner, "DeviceManager", nil, nil, emit)
	dm := object.NewDeviceManager(dmCore, object.DeviceManagerConfig{
		NcVersion: cfg.Device.NcVersion,
		Manufacturer: model.Manufacturer{
			Name: cfg.Device.ManufacturerName,
		},
		Product: model.Product{
			Name:          cfg.Device.ProductName,
			Key:           cfg.Device.ProductKey,
			RevisionLevel: cfg.Device.ProductRevision,
			Uuid:          &deviceID,
		},
		SerialNumber: cfg.Device.SerialNumber,
	})
	root.AddMember(dm)

	cmCore := object.NewObjectCore(model.ClassId{1, 3, 2}, classManagerOid, true, &owner, "ClassManager", nil, nil, emit)
	cm := object.NewClassManager(cmCore, reg)
	root.AddMember(cm)

	if cfg.Device.DeviceName != "" {
		dm.SetProperty(model.NewElementId(3, 6), cfg.Device.DeviceName)
	}

	return &device{root: root, deviceManager: dm, classManager: cm, nodeID: nodeID, deviceID: deviceID}
}
