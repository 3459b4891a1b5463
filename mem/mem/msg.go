package mem

import "github.com/3p1phany/myDRAMsim/sim/modeling"

// AccessReq abstracts the read and write requests a memory controller
// accepts.
type AccessReq interface {
	modeling.Req
	GetAddress() uint64
	GetByteSize() uint64
}

// AccessRsp abstracts the responses a memory controller returns.
type AccessRsp interface {
	modeling.Rsp
}

// ReadReq asks a memory controller to fetch data.
type ReadReq struct {
	modeling.MsgMeta

	Address        uint64
	AccessByteSize uint64
	Info           interface{}
}

// Meta returns the message meta.
func (r *ReadReq) Meta() modeling.MsgMeta { return r.MsgMeta }

// Clone returns a copy of the request with a fresh ID.
func (r *ReadReq) Clone() modeling.Msg {
	c := *r
	c.ID = modeling.NewID()

	return &c
}

// GenerateRsp builds the DataReadyRsp that completes this request.
func (r *ReadReq) GenerateRsp() modeling.Rsp {
	return DataReadyRspBuilder{}.
		WithSrc(r.Dst).
		WithDst(r.Src).
		WithRspTo(r.ID).
		Build()
}

// GetAddress returns the address the request accesses.
func (r *ReadReq) GetAddress() uint64 { return r.Address }

// GetByteSize returns the number of bytes the request accesses.
func (r *ReadReq) GetByteSize() uint64 { return r.AccessByteSize }

// ReadReqBuilder builds ReadReqs.
type ReadReqBuilder struct {
	src, dst          modeling.RemotePort
	address, byteSize uint64
	info              interface{}
}

// WithSrc sets the source of the request to build.
func (b ReadReqBuilder) WithSrc(src modeling.RemotePort) ReadReqBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the request to build.
func (b ReadReqBuilder) WithDst(dst modeling.RemotePort) ReadReqBuilder {
	b.dst = dst
	return b
}

// WithAddress sets the address of the request to build.
func (b ReadReqBuilder) WithAddress(address uint64) ReadReqBuilder {
	b.address = address
	return b
}

// WithByteSize sets the byte size of the request to build.
func (b ReadReqBuilder) WithByteSize(byteSize uint64) ReadReqBuilder {
	b.byteSize = byteSize
	return b
}

// WithInfo attaches arbitrary caller info to the request to build.
func (b ReadReqBuilder) WithInfo(info interface{}) ReadReqBuilder {
	b.info = info
	return b
}

// Build creates a new ReadReq.
func (b ReadReqBuilder) Build() *ReadReq {
	return &ReadReq{
		MsgMeta:        modeling.MsgMeta{ID: modeling.NewID(), Src: b.src, Dst: b.dst},
		Address:        b.address,
		AccessByteSize: b.byteSize,
		Info:           b.info,
	}
}

// WriteReq asks a memory controller to store data.
type WriteReq struct {
	modeling.MsgMeta

	Address   uint64
	Data      []byte
	DirtyMask []bool
	Info      interface{}
}

// Meta returns the message meta.
func (r *WriteReq) Meta() modeling.MsgMeta { return r.MsgMeta }

// Clone returns a copy of the request with a fresh ID.
func (r *WriteReq) Clone() modeling.Msg {
	c := *r
	c.ID = modeling.NewID()

	return &c
}

// GenerateRsp builds the WriteDoneRsp that completes this request.
func (r *WriteReq) GenerateRsp() modeling.Rsp {
	return WriteDoneRspBuilder{}.
		WithSrc(r.Dst).
		WithDst(r.Src).
		WithRspTo(r.ID).
		Build()
}

// GetAddress returns the address the request accesses.
func (r *WriteReq) GetAddress() uint64 { return r.Address }

// GetByteSize returns the number of bytes the request writes.
func (r *WriteReq) GetByteSize() uint64 { return uint64(len(r.Data)) }

// WriteReqBuilder builds WriteReqs.
type WriteReqBuilder struct {
	src, dst  modeling.RemotePort
	address   uint64
	data      []byte
	dirtyMask []bool
	info      interface{}
}

// WithSrc sets the source of the request to build.
func (b WriteReqBuilder) WithSrc(src modeling.RemotePort) WriteReqBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the request to build.
func (b WriteReqBuilder) WithDst(dst modeling.RemotePort) WriteReqBuilder {
	b.dst = dst
	return b
}

// WithAddress sets the address of the request to build.
func (b WriteReqBuilder) WithAddress(address uint64) WriteReqBuilder {
	b.address = address
	return b
}

// WithData sets the data of the request to build.
func (b WriteReqBuilder) WithData(data []byte) WriteReqBuilder {
	b.data = data
	return b
}

// WithDirtyMask sets the per-byte dirty mask of the request to build.
func (b WriteReqBuilder) WithDirtyMask(mask []bool) WriteReqBuilder {
	b.dirtyMask = mask
	return b
}

// WithInfo attaches arbitrary caller info to the request to build.
func (b WriteReqBuilder) WithInfo(info interface{}) WriteReqBuilder {
	b.info = info
	return b
}

// Build creates a new WriteReq.
func (b WriteReqBuilder) Build() *WriteReq {
	return &WriteReq{
		MsgMeta:   modeling.MsgMeta{ID: modeling.NewID(), Src: b.src, Dst: b.dst},
		Address:   b.address,
		Data:      b.data,
		DirtyMask: b.dirtyMask,
		Info:      b.info,
	}
}

// DataReadyRsp carries the data a ReadReq fetched back to the requester.
type DataReadyRsp struct {
	modeling.MsgMeta

	RespondTo string
	Data      []byte
}

// Meta returns the message meta.
func (r *DataReadyRsp) Meta() modeling.MsgMeta { return r.MsgMeta }

// Clone returns a copy of the response with a fresh ID.
func (r *DataReadyRsp) Clone() modeling.Msg {
	c := *r
	c.ID = modeling.NewID()

	return &c
}

// GetRspTo returns the ID of the request this responds to.
func (r *DataReadyRsp) GetRspTo() string { return r.RespondTo }

// DataReadyRspBuilder builds DataReadyRsps.
type DataReadyRspBuilder struct {
	src, dst modeling.RemotePort
	rspTo    string
	data     []byte
}

// WithSrc sets the source of the response to build.
func (b DataReadyRspBuilder) WithSrc(src modeling.RemotePort) DataReadyRspBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the response to build.
func (b DataReadyRspBuilder) WithDst(dst modeling.RemotePort) DataReadyRspBuilder {
	b.dst = dst
	return b
}

// WithRspTo sets the ID of the request the response to build replies to.
func (b DataReadyRspBuilder) WithRspTo(id string) DataReadyRspBuilder {
	b.rspTo = id
	return b
}

// WithData sets the data carried by the response to build.
func (b DataReadyRspBuilder) WithData(data []byte) DataReadyRspBuilder {
	b.data = data
	return b
}

// Build creates a new DataReadyRsp.
func (b DataReadyRspBuilder) Build() *DataReadyRsp {
	return &DataReadyRsp{
		MsgMeta:   modeling.MsgMeta{ID: modeling.NewID(), Src: b.src, Dst: b.dst},
		RespondTo: b.rspTo,
		Data:      b.data,
	}
}

// WriteDoneRsp confirms a WriteReq has completed.
type WriteDoneRsp struct {
	modeling.MsgMeta

	RespondTo string
}

// Meta returns the message meta.
func (r *WriteDoneRsp) Meta() modeling.MsgMeta { return r.MsgMeta }

// Clone returns a copy of the response with a fresh ID.
func (r *WriteDoneRsp) Clone() modeling.Msg {
	c := *r
	c.ID = modeling.NewID()

	return &c
}

// GetRspTo returns the ID of the request this responds to.
func (r *WriteDoneRsp) GetRspTo() string { return r.RespondTo }

// WriteDoneRspBuilder builds WriteDoneRsps.
type WriteDoneRspBuilder struct {
	src, dst modeling.RemotePort
	rspTo    string
}

// WithSrc sets the source of the response to build.
func (b WriteDoneRspBuilder) WithSrc(src modeling.RemotePort) WriteDoneRspBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the response to build.
func (b WriteDoneRspBuilder) WithDst(dst modeling.RemotePort) WriteDoneRspBuilder {
	b.dst = dst
	return b
}

// WithRspTo sets the ID of the request the response to build replies to.
func (b WriteDoneRspBuilder) WithRspTo(id string) WriteDoneRspBuilder {
	b.rspTo = id
	return b
}

// Build creates a new WriteDoneRsp.
func (b WriteDoneRspBuilder) Build() *WriteDoneRsp {
	return &WriteDoneRsp{
		MsgMeta:   modeling.MsgMeta{ID: modeling.NewID(), Src: b.src, Dst: b.dst},
		RespondTo: b.rspTo,
	}
}
