package rpc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
)

type echoRequest struct {
	Text string `json:"text"`
}

type echoResponse struct {
	Echo   string `json:"echo"`
	Length int    `json:"length"`
}

func TestService_RoundTrip(t *testing.T) {
	svc := NewService("test.v1.EchoService")
	Handle(svc, "Echo", func(_ context.Context, req *connect.Request[echoRequest]) (*connect.Response[echoResponse], error) {
		if req.Msg.Text == "" {
			return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("text required"))
		}
		return connect.NewResponse(&echoResponse{Echo: req.Msg.Text, Length: len(req.Msg.Text)}), nil
	})

	mux := http.NewServeMux()
	svc.Mount(mux)
	server := httptest.NewServer(mux)
	defer server.Close()

	if got := svc.Procedures(); len(got) != 1 || got[0] != "/test.v1.EchoService/Echo" {
		t.Fatalf("Procedures() = %v", got)
	}

	client := NewClient[echoRequest, echoResponse](http.DefaultClient, server.URL, Procedure(svc.Name(), "Echo"))

	resp, err := client.CallUnary(context.Background(), connect.NewRequest(&echoRequest{Text: "xin chào"}))
	if err != nil {
		t.Fatalf("Echo failed: %v", err)
	}
	if resp.Msg.Echo != "xin chào" || resp.Msg.Length != len("xin chào") {
		t.Errorf("unexpected response %+v", resp.Msg)
	}

	_, err = client.CallUnary(context.Background(), connect.NewRequest(&echoRequest{}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("expected InvalidArgument, got %v", err)
	}
}

func TestJSONCodec(t *testing.T) {
	codec := JSONCodec{}
	if codec.Name() != "json" {
		t.Errorf("Name() = %q", codec.Name())
	}

	var msg echoRequest
	if err := codec.Unmarshal(nil, &msg); err != nil {
		t.Errorf("empty body should decode to zero value: %v", err)
	}
	if err := codec.Unmarshal([]byte("{"), &msg); err == nil {
		t.Error("expected error for truncated JSON")
	}

	data, err := codec.Marshal(&echoResponse{Echo: "a", Length: 1})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"echo":"a","length":1}` {
		t.Errorf("Marshal = %s", data)
	}
}

func TestIsProcedurePath(t *testing.T) {
	if !IsProcedurePath("/apartmanager.v1.FeeService/ListFees", "/apartmanager.v1.") {
		t.Error("expected procedure path to match")
	}
	if IsProcedurePath("/index.html", "/apartmanager.v1.") {
		t.Error("static path should not match")
	}
}
